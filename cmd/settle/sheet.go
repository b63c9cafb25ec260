package main

import (
	"errors"
	"fmt"
	"os"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/parsers"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var errUnknownName = errors.New("player is not on the bet sheet")

// Sheet is the YAML bet sheet for one round. Players are referenced by name.
type Sheet struct {
	TeeBox  string        `yaml:"tee_box"`
	Players []SheetPlayer `yaml:"players"`
	Bets    []SheetBet    `yaml:"bets"`
}

type SheetPlayer struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Nickname  string `yaml:"nickname"`
}

type SheetSwingMan struct {
	Player string `yaml:"player"`
	// Team is 1-based in the sheet.
	Team int `yaml:"team"`
}

// SheetBet is the union of every bet kind's fields.
type SheetBet struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`

	Player1 string     `yaml:"player1"`
	Player2 string     `yaml:"player2"`
	Team1   []string   `yaml:"team1"`
	Team2   []string   `yaml:"team2"`
	Teams   [][]string `yaml:"teams"`
	Players []string   `yaml:"players"`

	SwingMan       *SheetSwingMan `yaml:"swing_man"`
	CountingScores int            `yaml:"counting_scores"`
	Mode           string         `yaml:"mode"`
	Press          bool           `yaml:"press"`

	// Stakes decode from the YAML scalar text, so no float rounding occurs.
	Stake        decimal.Decimal `yaml:"stake"`
	HoleStake    decimal.Decimal `yaml:"hole_stake"`
	BirdieStake  decimal.Decimal `yaml:"birdie_stake"`
	FrontStake   decimal.Decimal `yaml:"front_stake"`
	BackStake    decimal.Decimal `yaml:"back_stake"`
	LowBallStake decimal.Decimal `yaml:"low_ball_stake"`

	// Outcomes lists the winners of each putting contest, in order.
	Outcomes [][]string `yaml:"outcomes"`
}

func loadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bet sheet: %w", err)
	}
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse bet sheet: %w", err)
	}
	if len(sheet.Players) == 0 {
		return nil, fmt.Errorf("bet sheet %s lists no players", path)
	}
	return &sheet, nil
}

// roster assigns every sheet player a fresh id.
func (s *Sheet) roster() []wagerdomain.Player {
	players := make([]wagerdomain.Player, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, wagerdomain.Player{
			ID:        uuid.New(),
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Nickname:  p.Nickname,
		})
	}
	return players
}

type resolver struct {
	roster []wagerdomain.Player
	err    error
}

func (r *resolver) one(name string) wagerdomain.PlayerID {
	p, ok := parsers.MatchPlayer(r.roster, name)
	if !ok && r.err == nil {
		r.err = fmt.Errorf("%w: %q", errUnknownName, name)
	}
	return p.ID
}

func (r *resolver) many(names []string) []wagerdomain.PlayerID {
	ids := make([]wagerdomain.PlayerID, 0, len(names))
	for _, n := range names {
		ids = append(ids, r.one(n))
	}
	return ids
}

func (r *resolver) pair(names []string) [2]wagerdomain.PlayerID {
	var pair [2]wagerdomain.PlayerID
	if len(names) != 2 {
		if r.err == nil {
			r.err = fmt.Errorf("%w: four-ball teams need exactly 2 players, got %d", wagerdomain.ErrInvalidBet, len(names))
		}
		return pair
	}
	pair[0], pair[1] = r.one(names[0]), r.one(names[1])
	return pair
}

// build converts a sheet entry into a domain bet. Putting outcomes are
// returned separately since they are recorded after the bet is placed.
func (b SheetBet) build(roster []wagerdomain.Player) (wagerdomain.Bet, [][]wagerdomain.PlayerID, error) {
	r := &resolver{roster: roster}
	base := wagerdomain.BetBase{BetID: uuid.New(), Name: b.Name}

	var bet wagerdomain.Bet
	var outcomes [][]wagerdomain.PlayerID
	switch wagerdomain.Kind(b.Kind) {
	case wagerdomain.KindIndividual:
		bet = &wagerdomain.IndividualMatchBet{
			BetBase:     base,
			Player1:     r.one(b.Player1),
			Player2:     r.one(b.Player2),
			HoleStake:   b.HoleStake,
			BirdieStake: b.BirdieStake,
			Press:       b.Press,
		}
	case wagerdomain.KindFourBall:
		bet = &wagerdomain.FourBallMatchBet{
			BetBase:     base,
			Team1:       r.pair(b.Team1),
			Team2:       r.pair(b.Team2),
			HoleStake:   b.HoleStake,
			BirdieStake: b.BirdieStake,
			Press:       b.Press,
		}
	case wagerdomain.KindAlabama:
		teams := make([][]wagerdomain.PlayerID, 0, len(b.Teams))
		for _, t := range b.Teams {
			teams = append(teams, r.many(t))
		}
		alabama := &wagerdomain.AlabamaBet{
			BetBase:        base,
			Teams:          teams,
			CountingScores: b.CountingScores,
			FrontStake:     b.FrontStake,
			BackStake:      b.BackStake,
			LowBallStake:   b.LowBallStake,
			BirdieStake:    b.BirdieStake,
		}
		if b.SwingMan != nil {
			alabama.SwingMan = &wagerdomain.SwingMan{
				Player: r.one(b.SwingMan.Player),
				Team:   b.SwingMan.Team - 1,
			}
		}
		bet = alabama
	case wagerdomain.KindDoDa:
		mode := wagerdomain.DoDaMode(b.Mode)
		if mode == "" {
			mode = wagerdomain.DoDaPool
		}
		bet = &wagerdomain.DoDaBet{BetBase: base, Players: r.many(b.Players), Stake: b.Stake, Mode: mode}
	case wagerdomain.KindSkins:
		bet = &wagerdomain.SkinsBet{BetBase: base, Players: r.many(b.Players), Stake: b.Stake}
	case wagerdomain.KindPutting:
		bet = &wagerdomain.PuttingLedgerBet{BetBase: base, Players: r.many(b.Players), Stake: b.Stake}
		for _, winners := range b.Outcomes {
			outcomes = append(outcomes, r.many(winners))
		}
	case wagerdomain.KindCircus:
		bet = &wagerdomain.CircusBet{BetBase: base, Players: r.many(b.Players), Stake: b.Stake}
	default:
		return nil, nil, fmt.Errorf("%w: %q", wagerdomain.ErrUnknownKind, b.Kind)
	}
	if r.err != nil {
		return nil, nil, fmt.Errorf("bet %q: %w", b.Name, r.err)
	}
	return bet, outcomes, nil
}
