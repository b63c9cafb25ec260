package wagerdomain

import (
	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

// IndividualMatchBet is a head-to-head match paid per hole and per birdie on
// holes 1-8 and 10-17, with holes 9 and 18 as optional press holes.
type IndividualMatchBet struct {
	BetBase
	Posting

	Player1     PlayerID        `json:"player1"`
	Player2     PlayerID        `json:"player2"`
	HoleStake   decimal.Decimal `json:"hole_stake"`
	BirdieStake decimal.Decimal `json:"birdie_stake"`
	Press       bool            `json:"press"`
}

func (b *IndividualMatchBet) Kind() Kind { return KindIndividual }

func (b *IndividualMatchBet) Participants() []PlayerID {
	return []PlayerID{b.Player1, b.Player2}
}

func (b *IndividualMatchBet) Validate() error {
	if err := validatePlayers(b.Participants(), 2); err != nil {
		return err
	}
	if err := validateStake("hole", b.HoleStake); err != nil {
		return err
	}
	return validateStake("birdie", b.BirdieStake)
}

// Result is the signed amount from player 1's side.
func (b *IndividualMatchBet) Result(scores ScoreTable, tee coursedomain.TeeBox) decimal.Decimal {
	scores, tee = b.inputs(scores, tee)
	c1, c2 := scores.Card(b.Player1), scores.Card(b.Player2)
	return b.nine(c1, c2, tee, frontNine).Add(b.nine(c1, c2, tee, backNine))
}

func (b *IndividualMatchBet) Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement {
	r := b.Result(scores, tee)
	return Settlement{b.Player1: r, b.Player2: r.Neg()}
}

func (b *IndividualMatchBet) nine(c1, c2 Card, tee coursedomain.TeeBox, n nine) decimal.Decimal {
	holes, birdies1, birdies2 := 0, 0, 0
	for i := n.start; i < n.press; i++ {
		par := tee.Par(i)
		s1, ok1 := c1.Strokes(i)
		s2, ok2 := c2.Strokes(i)
		if ok1 && s1 < par {
			birdies1++
		}
		if ok2 && s2 < par {
			birdies2++
		}
		if ok1 && ok2 {
			holes += compareStrokes(s1, s2)
		}
	}

	subtotal := b.HoleStake.Mul(decimal.NewFromInt(int64(holes))).
		Add(b.BirdieStake.Mul(decimal.NewFromInt(int64(birdies1 - birdies2))))

	if !b.Press {
		return subtotal
	}
	s1, ok1 := c1.Strokes(n.press)
	s2, ok2 := c2.Strokes(n.press)
	if !ok1 || !ok2 {
		return subtotal
	}
	switch compareStrokes(s1, s2) {
	case 1:
		return subtotal.Mul(decimal.NewFromInt(2))
	case -1:
		return decimal.Zero
	default:
		return subtotal
	}
}

// compareStrokes is +1 when a beats b, -1 when b beats a and 0 on a tie.
func compareStrokes(a, b int) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}
