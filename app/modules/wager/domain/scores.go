// Package wagerdomain evaluates golf wagers against a score table. Everything
// here is pure: the same scores, tee box and bet always produce the same amounts.
package wagerdomain

import (
	"fmt"
	"maps"
	"strconv"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/google/uuid"
)

// HoleCount mirrors the course package so callers rarely need both imports.
const HoleCount = coursedomain.HoleCount

// OffTheBoard marks a player who picked up. Skins scores it as par+4; every
// other format treats it as no score.
const OffTheBoard = "X"

// skinsPickupPenalty is the strokes over par charged for an off-the-board hole in skins.
const skinsPickupPenalty = 4

type PlayerID = uuid.UUID

// Card holds one player's raw tokens for holes 1 to 18.
type Card [HoleCount]string

// ParseStrokes returns the stroke count for a token made only of digits.
// Empty, "X", signed and malformed tokens all report ok=false.
func ParseStrokes(token string) (int, bool) {
	if token == "" || token == OffTheBoard {
		return 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Strokes returns the score on the zero-based hole index i.
func (c Card) Strokes(i int) (int, bool) {
	return ParseStrokes(c[i])
}

// SkinsStrokes is Strokes with off-the-board counted as par+4.
func (c Card) SkinsStrokes(i, par int) (int, bool) {
	if c[i] == OffTheBoard {
		return par + skinsPickupPenalty, true
	}
	return c.Strokes(i)
}

// Finished reports whether hole i holds a number or an off-the-board mark.
func (c Card) Finished(i int) bool {
	if c[i] == OffTheBoard {
		return true
	}
	_, ok := c.Strokes(i)
	return ok
}

func (c Card) Complete() bool {
	for i := range c {
		if !c.Finished(i) {
			return false
		}
	}
	return true
}

// Total sums every valid stroke count on the card.
func (c Card) Total() int {
	total := 0
	for i := range c {
		if n, ok := c.Strokes(i); ok {
			total += n
		}
	}
	return total
}

// ScoreTable maps each player to a card. A player with no entry has an all-empty card.
type ScoreTable map[PlayerID]Card

func (t ScoreTable) Card(p PlayerID) Card {
	return t[p]
}

// SetScore writes a raw token for a one-based hole number.
func (t ScoreTable) SetScore(p PlayerID, hole int, token string) error {
	if hole < 1 || hole > HoleCount {
		return fmt.Errorf("%w: hole %d", ErrInvalidHole, hole)
	}
	card := t[p]
	card[hole-1] = token
	t[p] = card
	return nil
}

// Merge copies every card from other over the receiver's cards.
func (t ScoreTable) Merge(other ScoreTable) {
	maps.Copy(t, other)
}

func (t ScoreTable) Clone() ScoreTable {
	if t == nil {
		return ScoreTable{}
	}
	return maps.Clone(t)
}
