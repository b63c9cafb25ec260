package wagerservice

import (
	"context"
	"time"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/pkg/results"
)

// Service is the settlement aggregator exposed to handlers, HTTP and jobs.
type Service interface {
	Load(ctx context.Context) error

	AddPlayer(ctx context.Context, player wagerdomain.Player) (results.OperationResult[wagerdomain.Player, error], error)
	AddBet(ctx context.Context, bet wagerdomain.Bet) (results.OperationResult[BetSummary, error], error)
	RemoveBet(ctx context.Context, id wagerdomain.BetID) (results.OperationResult[BetSummary, error], error)

	SetScore(ctx context.Context, player wagerdomain.PlayerID, hole int, token string) (results.OperationResult[RoundStatus, error], error)
	ImportScores(ctx context.Context, scores wagerdomain.ScoreTable) (results.OperationResult[RoundStatus, error], error)
	SelectTeeBox(ctx context.Context, name string) (results.OperationResult[coursedomain.TeeBox, error], error)

	PostRound(ctx context.Context) (results.OperationResult[PostSummary, error], error)
	UnpostRound(ctx context.Context) (results.OperationResult[PostSummary, error], error)
	RecordPuttingOutcome(ctx context.Context, id wagerdomain.BetID, outcomeID string, winners []wagerdomain.PlayerID) (results.OperationResult[BetSummary, error], error)

	Balances(ctx context.Context) []wagerdomain.Balance
	Balance(ctx context.Context, player wagerdomain.PlayerID) (wagerdomain.Balance, error)
	Bets(ctx context.Context) []BetSummary
	Roster(ctx context.Context) []wagerdomain.Player
	BalanceChart(ctx context.Context) ([]byte, error)
}

// AutoPostScheduler posts a finished round after a delay.
type AutoPostScheduler interface {
	ScheduleAutoPost(ctx context.Context, at time.Time) error
}

// BetSummary is the read model for one wager.
type BetSummary struct {
	ID           wagerdomain.BetID      `json:"id"`
	Kind         wagerdomain.Kind       `json:"kind"`
	Name         string                 `json:"name,omitempty"`
	Participants []wagerdomain.PlayerID `json:"participants"`
	Posted       bool                   `json:"posted"`
}

// RoundStatus is returned after score changes.
type RoundStatus struct {
	Complete   bool       `json:"complete"`
	Posted     bool       `json:"posted"`
	AutoPostAt *time.Time `json:"auto_post_at,omitempty"`
}

// PostSummary describes a post or unpost.
type PostSummary struct {
	Bets           int    `json:"bets"`
	ProcessingHash string `json:"processing_hash,omitempty"`
}
