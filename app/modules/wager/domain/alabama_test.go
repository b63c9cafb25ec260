package wagerdomain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

func allPar(players ...PlayerID) ScoreTable {
	table := ScoreTable{}
	for _, p := range players {
		table[p] = parCard()
	}
	return table
}

func TestAlabamaSmallerTeamIsScaled(t *testing.T) {
	bet := &AlabamaBet{
		BetBase:    BetBase{BetID: uuid.New()},
		Teams:      [][]PlayerID{{alice, bob}, {carol, dave, erin, frank}},
		FrontStake: dec("100"),
	}
	if err := bet.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	scores := allPar(alice, bob, carol, dave, erin, frank)
	scores[alice] = with(parCard(), 1, "3")

	s := bet.Settle(scores, blueTee)
	for _, p := range []PlayerID{alice, bob} {
		assertAmount(t, "winner "+p.String(), s.Amount(p), "200")
	}
	for _, p := range []PlayerID{carol, dave, erin, frank} {
		assertAmount(t, "loser "+p.String(), s.Amount(p), "-100")
	}
	assertAmount(t, "team result", bet.TeamResult(scores, blueTee, 0, 1), "200")
	assertAmount(t, "sum", s.Sum(), "0")
}

func TestAlabamaComponents(t *testing.T) {
	tests := []struct {
		name   string
		bet    AlabamaBet
		scores ScoreTable
		want   map[PlayerID]string
	}{
		{
			name: "back nine to the lower best-ball sum",
			bet: AlabamaBet{
				Teams:     [][]PlayerID{{alice, bob}, {carol, dave}},
				BackStake: dec("20"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave)
				s[dave] = with(parCard(), 13, "4")
				return s
			}(),
			want: map[PlayerID]string{alice: "-20", bob: "-20", carol: "20", dave: "20"},
		},
		{
			name: "front nine uses each hole's best ball",
			bet: AlabamaBet{
				Teams:      [][]PlayerID{{alice, bob}, {carol, dave}},
				FrontStake: dec("20"),
				BackStake:  dec("20"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave)
				s[alice] = with(with(parCard(), 1, "3"), 2, "9")
				s[bob] = with(parCard(), 2, "5")
				s[carol] = with(parCard(), 5, "3")
				return s
			}(),
			// A nets par over holes 1-2 (3 and 5), B birdies hole 5
			want: map[PlayerID]string{alice: "-20", bob: "-20", carol: "20", dave: "20"},
		},
		{
			name: "tied sums pay nothing",
			bet: AlabamaBet{
				Teams:      [][]PlayerID{{alice, bob}, {carol, dave}},
				FrontStake: dec("20"),
				BackStake:  dec("20"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave)
				s[alice] = with(parCard(), 1, "3")
				s[dave] = with(parCard(), 2, "3")
				return s
			}(),
			want: map[PlayerID]string{alice: "0", bob: "0", carol: "0", dave: "0"},
		},
		{
			name: "birdie differential",
			bet: AlabamaBet{
				Teams:       [][]PlayerID{{alice, bob}, {carol, dave}},
				BirdieStake: dec("3"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave)
				s[alice] = with(with(parCard(), 1, "3"), 10, "3")
				s[bob] = with(parCard(), 10, "3")
				return s
			}(),
			want: map[PlayerID]string{alice: "6", bob: "6", carol: "-6", dave: "-6"},
		},
		{
			// Low ball is paid to the team with fewer holes holding a score.
			name: "low ball counts holes with scores",
			bet: AlabamaBet{
				Teams:        [][]PlayerID{{alice}, {bob}},
				LowBallStake: dec("10"),
			},
			scores: ScoreTable{
				alice: {"4", "4", "3", "5", "4"},
				bob:   parCard(),
			},
			want: map[PlayerID]string{alice: "20", bob: "-20"},
		},
		{
			// Front sums are 36 against 5; the blank holes count for nobody.
			name: "partial round sums each side's own best balls",
			bet: AlabamaBet{
				Teams:      [][]PlayerID{{alice}, {bob}},
				FrontStake: dec("10"),
			},
			scores: ScoreTable{
				alice: parCard(),
				bob:   {"5"},
			},
			want: map[PlayerID]string{alice: "-10", bob: "10"},
		},
		{
			name: "swing man plays with his team",
			bet: AlabamaBet{
				Teams:      [][]PlayerID{{alice, bob}, {carol}},
				SwingMan:   &SwingMan{Player: dave, Team: 1},
				FrontStake: dec("10"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave)
				s[dave] = with(parCard(), 1, "3")
				return s
			}(),
			want: map[PlayerID]string{alice: "-10", bob: "-10", carol: "10", dave: "10"},
		},
		{
			name: "three teams sum every pairing",
			bet: AlabamaBet{
				Teams:      [][]PlayerID{{alice, bob}, {carol, dave}, {erin, frank}},
				FrontStake: dec("5"),
			},
			scores: func() ScoreTable {
				s := allPar(alice, bob, carol, dave, erin, frank)
				s[alice] = with(parCard(), 1, "2")
				s[carol] = with(parCard(), 1, "3")
				return s
			}(),
			want: map[PlayerID]string{alice: "10", bob: "10", carol: "0", dave: "0", erin: "-10", frank: "-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet := tt.bet
			bet.BetID = uuid.New()
			if err := bet.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			s := bet.Settle(tt.scores, blueTee)
			for p, want := range tt.want {
				assertAmount(t, p.String(), s.Amount(p), want)
			}
		})
	}
}

func TestAlabamaEqualTeamsConserve(t *testing.T) {
	players := []PlayerID{alice, bob, carol, dave, erin, frank}
	for seed := range 50 {
		f := gofakeit.New(uint64(seed))
		bet := &AlabamaBet{
			BetBase:      BetBase{BetID: uuid.New()},
			Teams:        [][]PlayerID{{alice, bob}, {carol, dave}, {erin, frank}},
			FrontStake:   dec("10"),
			BackStake:    dec("15"),
			LowBallStake: dec("5"),
			BirdieStake:  dec("2.5"),
		}
		s := bet.Settle(randomTable(f, players...), blueTee)
		if !s.Sum().IsZero() {
			t.Fatalf("seed %d: settlement sum=%s want=0", seed, s.Sum())
		}
	}
}

func TestAlabamaUnevenTeamsConserve(t *testing.T) {
	players := []PlayerID{alice, bob, carol, dave, erin, frank}
	for seed := range 50 {
		f := gofakeit.New(uint64(seed))
		bet := &AlabamaBet{
			BetBase:      BetBase{BetID: uuid.New()},
			Teams:        [][]PlayerID{{alice}, {bob, carol}, {dave, erin, frank}},
			FrontStake:   dec("10"),
			BackStake:    dec("10"),
			LowBallStake: dec("5"),
			BirdieStake:  dec("1"),
		}
		s := bet.Settle(randomTable(f, players...), blueTee)
		if !nearlyZero(s.Sum()) {
			t.Fatalf("seed %d: settlement sum=%s want~0", seed, s.Sum())
		}
	}
}

func TestAlabamaValidate(t *testing.T) {
	tests := []struct {
		name string
		bet  AlabamaBet
	}{
		{"single team", AlabamaBet{Teams: [][]PlayerID{{alice, bob}}}},
		{"empty team", AlabamaBet{Teams: [][]PlayerID{{alice}, {}}}},
		{"player on two teams", AlabamaBet{Teams: [][]PlayerID{{alice}, {alice, bob}}}},
		{"swing man out of range", AlabamaBet{Teams: [][]PlayerID{{alice}, {bob}}, SwingMan: &SwingMan{Player: carol, Team: 2}}},
		{"swing man already on a team", AlabamaBet{Teams: [][]PlayerID{{alice}, {bob}}, SwingMan: &SwingMan{Player: bob, Team: 0}}},
		{"negative stake", AlabamaBet{Teams: [][]PlayerID{{alice}, {bob}}, FrontStake: dec("-1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bet.Validate(); err == nil {
				t.Fatalf("expected a validation error")
			}
		})
	}
}
