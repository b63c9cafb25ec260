package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/parsers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scorecard = "Name,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18\n" +
	"Par,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3\n" +
	"Alice,2,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3\n" +
	"Bob,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3\n" +
	"Carol,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3,3\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func balanceOf(t *testing.T, balances []wagerdomain.Balance, name string) wagerdomain.Balance {
	t.Helper()
	for _, b := range balances {
		if b.Player.DisplayName() == name {
			return b
		}
	}
	t.Fatalf("no balance for %s", name)
	return wagerdomain.Balance{}
}

func TestSettle(t *testing.T) {
	sheetPath := writeFile(t, "sheet.yaml", `
players:
  - first_name: Alice
  - first_name: Bob
  - first_name: Carol
bets:
  - kind: skins
    name: skins
    players: [Alice, bob]
    stake: 10
  - kind: putting
    name: practice green
    players: [Alice, Bob, Carol]
    stake: 1.5
    outcomes:
      - [Carol]
`)
	sheet, err := loadSheet(sheetPath)
	require.NoError(t, err)

	card, err := parseScorecard(parsers.NewFactory(), writeFile(t, "card.csv", scorecard))
	require.NoError(t, err)

	balances, err := settle(sheet, card, discardLogger())
	require.NoError(t, err)
	require.Len(t, balances, 3)

	alice := balanceOf(t, balances, "Alice")
	assert.Equal(t, "10", alice.Main.String())
	assert.Equal(t, "-1.5", alice.Side.String())

	bob := balanceOf(t, balances, "Bob")
	assert.Equal(t, "-10", bob.Main.String())

	carol := balanceOf(t, balances, "Carol")
	assert.True(t, carol.Main.IsZero())
	assert.Equal(t, "3", carol.Side.String())

	var out bytes.Buffer
	require.NoError(t, printBalances(&out, balances))
	assert.Contains(t, out.String(), "10.00")
	assert.Contains(t, out.String(), "-1.50")
}

func TestSettleErrors(t *testing.T) {
	card, err := parseScorecard(parsers.NewFactory(), writeFile(t, "card.csv", scorecard))
	require.NoError(t, err)

	tests := []struct {
		name    string
		bet     SheetBet
		wantErr string
	}{
		{
			name:    "unknown player",
			bet:     SheetBet{Kind: "skins", Name: "s", Players: []string{"Alice", "Dave"}, Stake: decimal.NewFromInt(5)},
			wantErr: "Dave",
		},
		{
			name:    "unknown kind",
			bet:     SheetBet{Kind: "wolf", Name: "w"},
			wantErr: "unknown bet kind",
		},
		{
			name:    "four-ball team size",
			bet:     SheetBet{Kind: "four_ball", Name: "fb", Team1: []string{"Alice"}, Team2: []string{"Bob", "Carol"}},
			wantErr: "exactly 2 players",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := &Sheet{
				Players: []SheetPlayer{{FirstName: "Alice"}, {FirstName: "Bob"}, {FirstName: "Carol"}},
				Bets:    []SheetBet{tt.bet},
			}
			_, err := settle(sheet, card, discardLogger())
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}

func TestTeeBoxFor(t *testing.T) {
	card, err := parseScorecard(parsers.NewFactory(), writeFile(t, "card.csv", scorecard))
	require.NoError(t, err)

	tee := teeBoxFor(&Sheet{}, card, discardLogger())
	assert.Equal(t, "Scorecard", tee.Name)

	tee = teeBoxFor(&Sheet{TeeBox: "white"}, card, discardLogger())
	assert.Equal(t, "White", tee.Name)
}

func TestLoadSheetKeepsExactStakes(t *testing.T) {
	sheet, err := loadSheet(writeFile(t, "sheet.yaml", `
players:
  - first_name: Alice
bets:
  - kind: alabama
    front_stake: 12345678901234567.89
    back_stake: 0.1
`))
	require.NoError(t, err)
	require.Len(t, sheet.Bets, 1)
	assert.Equal(t, "12345678901234567.89", sheet.Bets[0].FrontStake.String())
	assert.Equal(t, "0.1", sheet.Bets[0].BackStake.String())
	assert.True(t, sheet.Bets[0].LowBallStake.IsZero())

	_, err = loadSheet(writeFile(t, "bad.yaml", `
players:
  - first_name: Alice
bets:
  - kind: skins
    stake: ten
`))
	assert.ErrorContains(t, err, "failed to parse bet sheet")
}

func TestLoadSheetRequiresPlayers(t *testing.T) {
	_, err := loadSheet(writeFile(t, "empty.yaml", "bets: []\n"))
	assert.ErrorContains(t, err, "no players")
}
