package parsers

import (
	"bytes"
	"testing"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const eighteen = "Name,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,Total\n" +
	"Par,4,4,3,5,4,4,3,4,5,4,3,4,5,4,4,3,4,5,72\n" +
	"Alice Smith,4,3,3,5,4,4,3,4,5,4,3,4,5,4,4,3,4,5,71\n" +
	"Bob,5,x,3,-,4,4,3,4,5,4,3,4,5,4,4,3,4,5,\n"

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "scores.csv", want: "csv"},
		{name: "tsv file", filename: "round.TSV", want: "csv"},
		{name: "xlsx file", filename: "scores.xlsx", want: "xlsx"},
		{name: "unsupported file", filename: "scores.pdf", wantErr: true},
		{name: "no extension", filename: "scores", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantPars []int
		wantRows []ScoreRow
	}{
		{
			name:     "front nine",
			data:     "Name,1,2,3,4,5,6,7,8,9\nPar,3,4,3,4,3,4,3,4,3\nPlayer One,3,4,3,4,3,4,3,4,3",
			wantPars: []int{3, 4, 3, 4, 3, 4, 3, 4, 3},
			wantRows: []ScoreRow{{Name: "Player One", Tokens: []string{"3", "4", "3", "4", "3", "4", "3", "4", "3"}}},
		},
		{
			name:     "tabs, BOM and short rows",
			data:     "\xEF\xBB\xBFPar\t3\t4\t5\r\nCarol\t2\r\n",
			wantPars: []int{3, 4, 5},
			wantRows: []ScoreRow{{Name: "Carol", Tokens: []string{"2", "", ""}}},
		},
		{
			name: "invalid par row",
			data: "Name,1,2\nPar,3,not-a-number\nAlice,3,3",
		},
		{
			name:    "no par row",
			data:    "Name,1,2,3\nAlice,3,3,3",
			wantErr: ErrNoParRow,
		},
		{
			name:    "no players",
			data:    "Name,1,2,3\nPar,3,3,3",
			wantErr: ErrNoPlayers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := parser.Parse([]byte(tt.data))
			if tt.wantPars == nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantPars, card.Pars); diff != "" {
				t.Errorf("pars mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRows, card.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSVParser_EighteenHoles(t *testing.T) {
	card, err := NewCSVParser().Parse([]byte(eighteen))
	require.NoError(t, err)
	require.Len(t, card.Pars, 18, "total column is not a par")
	require.Len(t, card.Rows, 2)

	bob := card.Rows[1]
	require.Equal(t, "X", bob.Tokens[1])
	require.Equal(t, "", bob.Tokens[3])

	tee, ok := card.TeeBox("Imported")
	require.True(t, ok)
	require.Equal(t, 72, tee.TotalPar())
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", 1, 2, 3},
		{"Par", 4, 3, 5},
		{"Dave", 4, "X", 6},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	card, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []int{4, 3, 5}, card.Pars)
	require.Equal(t, []ScoreRow{{Name: "Dave", Tokens: []string{"4", "X", "6"}}}, card.Rows)

	_, ok := card.TeeBox("short")
	require.False(t, ok)
}

func TestXLSXParser_NotAZip(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("Par,3,4\nA,3,4"))
	require.ErrorContains(t, err, "Hint")
}

func TestScoreTable(t *testing.T) {
	alice := wagerdomain.Player{ID: uuid.New(), FirstName: "Alice", LastName: "Smith"}
	bob := wagerdomain.Player{ID: uuid.New(), FirstName: "Robert", Nickname: "Bob"}

	card, err := NewCSVParser().Parse([]byte(eighteen + "Zed,4,4,3,5,4,4,3,4,5,4,3,4,5,4,4,3,4,5\n"))
	require.NoError(t, err)

	table, unmatched := card.ScoreTable([]wagerdomain.Player{alice, bob})
	require.Equal(t, []string{"Zed"}, unmatched)
	require.Len(t, table, 2)
	require.Equal(t, "3", table[alice.ID][1])
	require.True(t, table[alice.ID].Complete())
	require.Equal(t, "X", table[bob.ID][1])
	require.False(t, table[bob.ID].Complete())
}
