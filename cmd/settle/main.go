package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/parsers"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "settle",
		Usage: "settle a round offline from a bet sheet and a scorecard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sheet", Required: true, Usage: "YAML bet sheet"},
			&cli.StringFlag{Name: "scores", Required: true, Usage: "scorecard (.csv, .tsv, .txt, .xlsx)"},
			&cli.BoolFlag{Name: "json", Usage: "print balances as JSON"},
		},
		Action: func(c *cli.Context) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			sheet, err := loadSheet(c.String("sheet"))
			if err != nil {
				return err
			}
			card, err := parseScorecard(parsers.NewFactory(), c.String("scores"))
			if err != nil {
				return err
			}
			balances, err := settle(sheet, card, logger)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(balances)
			}
			return printBalances(c.App.Writer, balances)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseScorecard(factory parsers.ParserFactory, path string) (*parsers.ParsedScorecard, error) {
	parser, err := factory.GetParser(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scorecard: %w", err)
	}
	return parser.Parse(data)
}

// settle builds a ledger from the sheet, loads the scorecard, posts every bet
// and returns the resulting balances.
func settle(sheet *Sheet, card *parsers.ParsedScorecard, logger *slog.Logger) ([]wagerdomain.Balance, error) {
	ledger := wagerdomain.NewLedger(teeBoxFor(sheet, card, logger))

	roster := sheet.roster()
	for _, p := range roster {
		ledger.AddPlayer(p)
	}

	scores, unmatched := card.ScoreTable(roster)
	for _, name := range unmatched {
		logger.Warn("Scorecard row matches no player on the sheet", attr.String("name", name))
	}
	ledger.ImportScores(scores)

	for _, sb := range sheet.Bets {
		bet, outcomes, err := sb.build(roster)
		if err != nil {
			return nil, err
		}
		if err := ledger.AddBet(bet); err != nil {
			return nil, fmt.Errorf("bet %q: %w", sb.Name, err)
		}
		for _, winners := range outcomes {
			if err := ledger.RecordPuttingOutcome(bet.ID(), "", winners); err != nil {
				return nil, fmt.Errorf("bet %q: %w", sb.Name, err)
			}
		}
	}

	if !ledger.RoundComplete() {
		logger.Warn("Posting an incomplete round")
	}
	posted := ledger.PostRound()
	logger.Info("Round posted", attr.Int("bets", posted))
	return ledger.Balances(), nil
}

// teeBoxFor prefers a named home-course tee box, then the scorecard's own par
// row, then the home course default.
func teeBoxFor(sheet *Sheet, card *parsers.ParsedScorecard, logger *slog.Logger) coursedomain.TeeBox {
	if sheet.TeeBox != "" {
		tee, err := coursedomain.HomeCourse.TeeBox(sheet.TeeBox)
		if err == nil {
			return tee
		}
		logger.Warn("Unknown tee box on sheet", attr.String("tee_box", sheet.TeeBox), attr.Error(err))
	}
	if tee, ok := card.TeeBox("Scorecard"); ok {
		return tee
	}
	return coursedomain.HomeCourse.TeeBoxes[0]
}

func printBalances(w io.Writer, balances []wagerdomain.Balance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Player\tMain\tSide\t")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", b.Player.DisplayName(), b.Main.StringFixed(2), b.Side.StringFixed(2))
	}
	return tw.Flush()
}
