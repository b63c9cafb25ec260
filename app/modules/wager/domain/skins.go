package wagerdomain

import (
	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

// SkinsBet splits a pot per skin. A skin is a hole won outright.
type SkinsBet struct {
	BetBase
	Posting

	Players []PlayerID      `json:"players"`
	Stake   decimal.Decimal `json:"stake"`
}

func (b *SkinsBet) Kind() Kind { return KindSkins }

func (b *SkinsBet) Participants() []PlayerID { return b.Players }

func (b *SkinsBet) Validate() error {
	if err := validatePlayers(b.Players, 2); err != nil {
		return err
	}
	return validateStake("skins", b.Stake)
}

// Skins returns the skins won per player. A hole only counts once every
// participant has finished it; tied low scores carry nothing.
func (b *SkinsBet) Skins(scores ScoreTable, tee coursedomain.TeeBox) map[PlayerID]int {
	scores, tee = b.inputs(scores, tee)
	won := make(map[PlayerID]int, len(b.Players))
	if len(b.Players) == 0 {
		return won
	}

holes:
	for i := range HoleCount {
		var (
			low    int
			winner PlayerID
			tied   bool
		)
		for j, p := range b.Players {
			n, ok := scores.Card(p).SkinsStrokes(i, tee.Par(i))
			if !ok {
				continue holes
			}
			switch {
			case j == 0 || n < low:
				low, winner, tied = n, p, false
			case n == low:
				tied = true
			}
		}
		if !tied {
			won[winner]++
		}
	}
	return won
}

func (b *SkinsBet) Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement {
	won := b.Skins(scores, tee)
	total := 0
	for _, n := range won {
		total += n
	}

	pot := b.Stake.Mul(decimal.NewFromInt(int64(len(b.Players))))
	s := Settlement{}
	for _, p := range b.Players {
		s.Add(p, b.Stake.Neg())
		if total > 0 && won[p] > 0 {
			s.Add(p, pot.Mul(decimal.NewFromInt(int64(won[p]))).Div(decimal.NewFromInt(int64(total))))
		}
	}
	return s
}
