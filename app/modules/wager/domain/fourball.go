package wagerdomain

import (
	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

// FourBallMatchBet pits two best-ball pairs against each other over 18 holes.
type FourBallMatchBet struct {
	BetBase
	Posting

	Team1       [2]PlayerID     `json:"team1"`
	Team2       [2]PlayerID     `json:"team2"`
	HoleStake   decimal.Decimal `json:"hole_stake"`
	BirdieStake decimal.Decimal `json:"birdie_stake"`
	// Press is recorded with the bet but does not change the result.
	Press bool `json:"press"`
}

func (b *FourBallMatchBet) Kind() Kind { return KindFourBall }

func (b *FourBallMatchBet) Participants() []PlayerID {
	return []PlayerID{b.Team1[0], b.Team1[1], b.Team2[0], b.Team2[1]}
}

func (b *FourBallMatchBet) Validate() error {
	if err := validatePlayers(b.Participants(), 4); err != nil {
		return err
	}
	if err := validateStake("hole", b.HoleStake); err != nil {
		return err
	}
	return validateStake("birdie", b.BirdieStake)
}

// Result is the signed amount from team 1's side.
func (b *FourBallMatchBet) Result(scores ScoreTable, tee coursedomain.TeeBox) decimal.Decimal {
	scores, tee = b.inputs(scores, tee)
	team1, team2 := b.Team1[:], b.Team2[:]

	front, back, birdies1, birdies2 := 0, 0, 0, 0
	for i := range HoleCount {
		best1, ok1 := bestBall(scores, team1, i)
		best2, ok2 := bestBall(scores, team2, i)
		if ok1 && best1 < tee.Par(i) {
			birdies1++
		}
		if ok2 && best2 < tee.Par(i) {
			birdies2++
		}
		if !ok1 || !ok2 {
			continue
		}
		if i < frontSegment.end {
			front += compareStrokes(best1, best2)
		} else {
			back += compareStrokes(best1, best2)
		}
	}

	return b.HoleStake.Mul(decimal.NewFromInt(int64(front + back))).
		Add(b.BirdieStake.Mul(decimal.NewFromInt(int64(birdies1 - birdies2))))
}

func (b *FourBallMatchBet) Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement {
	r := b.Result(scores, tee)
	s := Settlement{}
	for _, p := range b.Team1 {
		s.Add(p, r)
	}
	for _, p := range b.Team2 {
		s.Add(p, r.Neg())
	}
	return s
}

// bestBall is the lowest valid score on hole i among players.
func bestBall(scores ScoreTable, players []PlayerID, i int) (int, bool) {
	best, found := 0, false
	for _, p := range players {
		n, ok := scores.Card(p).Strokes(i)
		if !ok {
			continue
		}
		if !found || n < best {
			best, found = n, true
		}
	}
	return best, found
}
