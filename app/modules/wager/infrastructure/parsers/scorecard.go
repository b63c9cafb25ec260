package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scorecard format")
	ErrNoParRow          = errors.New("no par row found")
	ErrNoPlayers         = errors.New("no player rows found")
)

// ParsedScorecard is a scorecard before players are resolved. Tokens are
// kept as written so pickups ("X") and blanks survive the import.
type ParsedScorecard struct {
	Pars []int
	Rows []ScoreRow
}

type ScoreRow struct {
	Name   string
	Tokens []string
}

// TeeBox builds an unrated tee box from the par row. Only full 18-hole
// cards carry enough pars.
func (c *ParsedScorecard) TeeBox(name string) (coursedomain.TeeBox, bool) {
	if len(c.Pars) != coursedomain.HoleCount {
		return coursedomain.TeeBox{}, false
	}
	var pars [coursedomain.HoleCount]int
	copy(pars[:], c.Pars)
	return coursedomain.TeeBoxWithPars(name, pars), true
}

// ScoreTable resolves every row against the roster by display name, nickname
// or first name. Rows that match nobody are returned by name.
func (c *ParsedScorecard) ScoreTable(roster []wagerdomain.Player) (wagerdomain.ScoreTable, []string) {
	table := wagerdomain.ScoreTable{}
	var unmatched []string
	for _, row := range c.Rows {
		player, ok := MatchPlayer(roster, row.Name)
		if !ok {
			unmatched = append(unmatched, row.Name)
			continue
		}
		var card wagerdomain.Card
		for i := 0; i < len(row.Tokens) && i < len(card); i++ {
			card[i] = row.Tokens[i]
		}
		table[player.ID] = card
	}
	return table, unmatched
}

// MatchPlayer finds name in the roster, trying display name, full name,
// nickname and first name in that order. Matching ignores case and spacing.
func MatchPlayer(roster []wagerdomain.Player, name string) (wagerdomain.Player, bool) {
	name = normalizeName(name)
	for _, candidates := range []func(wagerdomain.Player) string{
		func(p wagerdomain.Player) string { return p.DisplayName() },
		func(p wagerdomain.Player) string { return p.FirstName + " " + p.LastName },
		func(p wagerdomain.Player) string { return p.Nickname },
		func(p wagerdomain.Player) string { return p.FirstName },
	} {
		for _, p := range roster {
			if n := normalizeName(candidates(p)); n != "" && n == name {
				return p, true
			}
		}
	}
	return wagerdomain.Player{}, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// parseRecords finds the par row and extracts every player row after it.
func parseRecords(records [][]string, source string) (*ParsedScorecard, error) {
	parRowIndex, pars, err := findParRow(records)
	if err != nil {
		return nil, err
	}
	if parRowIndex < 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoParRow, source)
	}

	var rows []ScoreRow
	for i, record := range records {
		if i == parRowIndex || len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" || isHeaderCell(name) {
			continue
		}
		tokens := make([]string, len(pars))
		for j := range tokens {
			if j+1 < len(record) {
				tokens[j] = normalizeToken(record[j+1])
			}
		}
		rows = append(rows, ScoreRow{Name: name, Tokens: tokens})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPlayers, source)
	}
	return &ParsedScorecard{Pars: pars, Rows: rows}, nil
}

// findParRow identifies the par row and extracts par values
func findParRow(records [][]string) (int, []int, error) {
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		if isParLabel(record[0]) {
			pars, err := parseParRow(record[1:])
			if err != nil {
				return -1, nil, fmt.Errorf("invalid par row at line %d: %w", i+1, err)
			}
			return i, pars, nil
		}
	}
	return -1, nil, nil
}

func isParLabel(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAR", "PARS":
		return true
	}
	return false
}

func isHeaderCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "player", "playername", "hole", "holes":
		return true
	}
	return false
}

// parseParRow reads par values up to the first blank or total column.
func parseParRow(record []string) ([]int, error) {
	var pars []int
	for _, val := range record {
		val = strings.TrimSpace(val)
		if val == "" || len(pars) == coursedomain.HoleCount {
			break
		}
		par, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("non-numeric par value: %q", val)
		}
		if par <= 0 {
			return nil, fmt.Errorf("par must be positive: %d", par)
		}
		pars = append(pars, par)
	}
	if len(pars) == 0 {
		return nil, errors.New("par row is empty")
	}
	return pars, nil
}

func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "-":
		return ""
	case strings.EqualFold(s, wagerdomain.OffTheBoard):
		return wagerdomain.OffTheBoard
	}
	return s
}
