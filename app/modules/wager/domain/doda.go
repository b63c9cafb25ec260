package wagerdomain

import (
	"fmt"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

// doDaStrokes is the hole score that counts as a Do-Da.
const doDaStrokes = 2

type DoDaMode string

const (
	// DoDaPool charges everyone the stake up front and splits the pot per Do-Da.
	DoDaPool DoDaMode = "pool"
	// DoDaPerOccurrence settles each Do-Da directly between its maker and the field.
	DoDaPerOccurrence DoDaMode = "per_occurrence"
)

// DoDaBet pays for holes finished in exactly two strokes.
type DoDaBet struct {
	BetBase
	Posting

	Players []PlayerID      `json:"players"`
	Stake   decimal.Decimal `json:"stake"`
	Mode    DoDaMode        `json:"mode"`
}

func (b *DoDaBet) Kind() Kind { return KindDoDa }

func (b *DoDaBet) Participants() []PlayerID { return b.Players }

func (b *DoDaBet) Validate() error {
	if err := validatePlayers(b.Players, 2); err != nil {
		return err
	}
	if b.Mode != DoDaPool && b.Mode != DoDaPerOccurrence {
		return fmt.Errorf("%w: do-da mode %q", ErrInvalidBet, b.Mode)
	}
	return validateStake("do-da", b.Stake)
}

// Counts returns how many Do-Das each participant made.
func (b *DoDaBet) Counts(scores ScoreTable, tee coursedomain.TeeBox) map[PlayerID]int {
	scores, _ = b.inputs(scores, tee)
	counts := make(map[PlayerID]int, len(b.Players))
	for _, p := range b.Players {
		card := scores.Card(p)
		for i := range HoleCount {
			if n, ok := card.Strokes(i); ok && n == doDaStrokes {
				counts[p]++
			}
		}
	}
	return counts
}

func (b *DoDaBet) Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement {
	counts := b.Counts(scores, tee)
	n := decimal.NewFromInt(int64(len(b.Players)))
	s := Settlement{}

	if b.Mode == DoDaPerOccurrence {
		for _, p := range b.Players {
			s.Add(p, decimal.Zero)
		}
		for _, maker := range b.Players {
			made := decimal.NewFromInt(int64(counts[maker]))
			if made.IsZero() {
				continue
			}
			for _, other := range b.Players {
				if other == maker {
					continue
				}
				s.Add(other, b.Stake.Mul(made).Neg())
			}
			s.Add(maker, b.Stake.Mul(n.Sub(decimal.NewFromInt(1))).Mul(made))
		}
		return s
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	pot := b.Stake.Mul(n)
	for _, p := range b.Players {
		s.Add(p, b.Stake.Neg())
		if total > 0 && counts[p] > 0 {
			s.Add(p, pot.Mul(decimal.NewFromInt(int64(counts[p]))).Div(decimal.NewFromInt(int64(total))))
		}
	}
	return s
}
