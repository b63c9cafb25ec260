package wagerdomain

import (
	"fmt"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SwingMan is a floating player counted as a member of one team.
type SwingMan struct {
	Player PlayerID `json:"player"`
	Team   int      `json:"team"`
}

// AlabamaBet is the multi-team game. Every team plays every other team for
// the front nine, the back nine, low ball and birdies.
type AlabamaBet struct {
	BetBase
	Posting

	Teams    [][]PlayerID `json:"teams"`
	SwingMan *SwingMan    `json:"swing_man,omitempty"`
	// CountingScores is shown to players; scoring always uses the single
	// lowest score per hole.
	CountingScores int `json:"counting_scores"`

	FrontStake   decimal.Decimal `json:"front_stake"`
	BackStake    decimal.Decimal `json:"back_stake"`
	LowBallStake decimal.Decimal `json:"low_ball_stake"`
	BirdieStake  decimal.Decimal `json:"birdie_stake"`
}

func (b *AlabamaBet) Kind() Kind { return KindAlabama }

func (b *AlabamaBet) Participants() []PlayerID {
	var players []PlayerID
	for _, team := range b.Teams {
		players = append(players, team...)
	}
	if b.SwingMan != nil {
		players = append(players, b.SwingMan.Player)
	}
	return players
}

func (b *AlabamaBet) Validate() error {
	if len(b.Teams) < 2 {
		return fmt.Errorf("%w: alabama needs at least 2 teams, got %d", ErrInvalidBet, len(b.Teams))
	}
	for i, team := range b.Teams {
		if len(team) == 0 {
			return fmt.Errorf("%w: team %d is empty", ErrInvalidBet, i+1)
		}
	}
	if err := validatePlayers(b.Participants(), 2); err != nil {
		return err
	}
	if b.SwingMan != nil && (b.SwingMan.Team < 0 || b.SwingMan.Team >= len(b.Teams)) {
		return fmt.Errorf("%w: swing man assigned to team %d of %d", ErrInvalidBet, b.SwingMan.Team+1, len(b.Teams))
	}
	if b.CountingScores < 0 {
		return fmt.Errorf("%w: counting scores is negative", ErrInvalidBet)
	}
	for name, stake := range map[string]decimal.Decimal{
		"front": b.FrontStake, "back": b.BackStake, "low ball": b.LowBallStake, "birdie": b.BirdieStake,
	} {
		if err := validateStake(name, stake); err != nil {
			return err
		}
	}
	return nil
}

// members returns team i including the swing man when he plays with it.
func (b *AlabamaBet) members(i int) []PlayerID {
	team := b.Teams[i]
	if b.SwingMan == nil || b.SwingMan.Team != i || b.SwingMan.Player == uuid.Nil {
		return team
	}
	withSwing := make([]PlayerID, 0, len(team)+1)
	withSwing = append(withSwing, team...)
	return append(withSwing, b.SwingMan.Player)
}

func (b *AlabamaBet) Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement {
	scores, tee = b.inputs(scores, tee)
	s := Settlement{}
	for a := range b.Teams {
		teamA := b.members(a)
		total := decimal.Zero
		for o := range b.Teams {
			if o == a {
				continue
			}
			total = total.Add(b.compare(scores, tee, teamA, b.members(o)))
		}
		for _, p := range teamA {
			s.Add(p, total)
		}
	}
	return s
}

// TeamResult is the per-member amount team a wins from team o.
func (b *AlabamaBet) TeamResult(scores ScoreTable, tee coursedomain.TeeBox, a, o int) decimal.Decimal {
	scores, tee = b.inputs(scores, tee)
	return b.compare(scores, tee, b.members(a), b.members(o))
}

func (b *AlabamaBet) compare(scores ScoreTable, tee coursedomain.TeeBox, us, them []PlayerID) decimal.Decimal {
	scale := sizeScale(len(us), len(them))

	total := decimal.Zero
	for _, seg := range []struct {
		segment
		stake decimal.Decimal
	}{
		{frontSegment, b.FrontStake},
		{backSegment, b.BackStake},
	} {
		// Each side sums its own best balls; blank holes add nothing.
		ourSum, theirSum := 0, 0
		for i := seg.start; i < seg.end; i++ {
			if ours, ok := bestBall(scores, us, i); ok {
				ourSum += ours
			}
			if theirs, ok := bestBall(scores, them, i); ok {
				theirSum += theirs
			}
		}
		total = total.Add(seg.stake.Mul(decimal.NewFromInt(int64(compareStrokes(ourSum, theirSum)))))

		// Low ball goes to the team with FEWER holes holding any score. This
		// counts presence rather than comparing low scores and is kept as-is
		// so existing ledgers settle the same way.
		ourHoles := holesWithScores(scores, us, seg.segment)
		theirHoles := holesWithScores(scores, them, seg.segment)
		total = total.Add(b.LowBallStake.Mul(decimal.NewFromInt(int64(compareStrokes(ourHoles, theirHoles)))))
	}

	ourBirdies, theirBirdies := 0, 0
	for i := range HoleCount {
		if n, ok := bestBall(scores, us, i); ok && n < tee.Par(i) {
			ourBirdies++
		}
		if n, ok := bestBall(scores, them, i); ok && n < tee.Par(i) {
			theirBirdies++
		}
	}
	total = total.Add(b.BirdieStake.Mul(decimal.NewFromInt(int64(ourBirdies - theirBirdies))))

	return total.Mul(scale)
}

// sizeScale is the per-member multiplier for a team of size us facing a team
// of size them. The smaller side carries the larger side's headcount, so each
// comparison moves the same total in both directions.
func sizeScale(us, them int) decimal.Decimal {
	if us >= them {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(them)).Div(decimal.NewFromInt(int64(us)))
}

func holesWithScores(scores ScoreTable, players []PlayerID, seg segment) int {
	n := 0
	for i := seg.start; i < seg.end; i++ {
		if _, ok := bestBall(scores, players, i); ok {
			n++
		}
	}
	return n
}
