package wagerdomain

import (
	"fmt"
	"slices"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

type PuttingState string

const (
	PuttingIdle    PuttingState = "idle"
	PuttingSettled PuttingState = "settled"
)

// PuttingLedgerBet keeps running totals for putting contests recorded by hand.
// Only the totals are kept, not the individual outcomes.
type PuttingLedgerBet struct {
	BetBase

	Players  []PlayerID                   `json:"players"`
	Stake    decimal.Decimal              `json:"stake"`
	Totals   map[PlayerID]decimal.Decimal `json:"totals"`
	Outcomes int                          `json:"outcomes"`
	// Recorded holds the keys of outcomes already applied.
	Recorded []string `json:"recorded,omitempty"`
}

func (b *PuttingLedgerBet) Kind() Kind { return KindPutting }

func (b *PuttingLedgerBet) Participants() []PlayerID { return b.Players }

func (b *PuttingLedgerBet) Validate() error {
	if err := validatePlayers(b.Players, 2); err != nil {
		return err
	}
	return validateStake("putting", b.Stake)
}

func (b *PuttingLedgerBet) State() PuttingState {
	if b.Outcomes == 0 {
		return PuttingIdle
	}
	return PuttingSettled
}

// RecordOutcome charges every non-winner the stake once per winner and pays
// every winner the stake once per non-winner. Replaying a non-empty key is a
// no-op.
func (b *PuttingLedgerBet) RecordOutcome(key string, winners []PlayerID) error {
	if key != "" && slices.Contains(b.Recorded, key) {
		return nil
	}
	for _, w := range winners {
		if !slices.Contains(b.Players, w) {
			return fmt.Errorf("%w: %s", ErrNotParticipant, w)
		}
	}
	winners = slices.Compact(slices.SortedFunc(slices.Values(winners), comparePlayers))

	if b.Totals == nil {
		b.Totals = make(map[PlayerID]decimal.Decimal, len(b.Players))
	}
	w := decimal.NewFromInt(int64(len(winners)))
	losers := decimal.NewFromInt(int64(len(b.Players) - len(winners)))
	for _, p := range b.Players {
		if slices.Contains(winners, p) {
			b.Totals[p] = b.Totals[p].Add(b.Stake.Mul(losers))
		} else {
			b.Totals[p] = b.Totals[p].Sub(b.Stake.Mul(w))
		}
	}
	b.Outcomes++
	if key != "" {
		b.Recorded = append(b.Recorded, key)
	}
	return nil
}

// Settle reports the running totals; putting is never scored from the card.
func (b *PuttingLedgerBet) Settle(ScoreTable, coursedomain.TeeBox) Settlement {
	s := Settlement{}
	for _, p := range b.Players {
		s.Add(p, b.Totals[p])
	}
	return s
}

// CircusBet is registered as a side bet so players can be entered ahead of
// time. It settles to zero for everyone.
type CircusBet struct {
	BetBase

	Players []PlayerID      `json:"players"`
	Stake   decimal.Decimal `json:"stake"`
}

func (b *CircusBet) Kind() Kind { return KindCircus }

func (b *CircusBet) Participants() []PlayerID { return b.Players }

func (b *CircusBet) Validate() error {
	return validatePlayers(b.Players, 1)
}

// TODO: score circus holes once the hole-by-hole circus rules are settled.
func (b *CircusBet) Settle(ScoreTable, coursedomain.TeeBox) Settlement {
	s := Settlement{}
	for _, p := range b.Players {
		s.Add(p, decimal.Zero)
	}
	return s
}
