package wagerdb

import (
	"context"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/uptrace/bun"
)

// Repository persists the score document and the bet collection. Loads never
// fail on bad stored data: they fall back to empty defaults.
type Repository interface {
	LoadScores(ctx context.Context, db bun.IDB) (ScoresDocument, error)
	SaveScores(ctx context.Context, db bun.IDB, doc ScoresDocument) error

	LoadBets(ctx context.Context, db bun.IDB) ([]wagerdomain.Bet, error)
	SaveBets(ctx context.Context, db bun.IDB, bets []wagerdomain.Bet) error
}
