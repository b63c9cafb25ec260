package wagerhandlers

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/pkg/results"
)

// ------------------------
// Fake Wager Service
// ------------------------

type FakeWagerService struct {
	trace []string

	AddPlayerFunc            func(ctx context.Context, player wagerdomain.Player) (results.OperationResult[wagerdomain.Player, error], error)
	AddBetFunc               func(ctx context.Context, bet wagerdomain.Bet) (results.OperationResult[wagerservice.BetSummary, error], error)
	RemoveBetFunc            func(ctx context.Context, id wagerdomain.BetID) (results.OperationResult[wagerservice.BetSummary, error], error)
	SetScoreFunc             func(ctx context.Context, player wagerdomain.PlayerID, hole int, token string) (results.OperationResult[wagerservice.RoundStatus, error], error)
	ImportScoresFunc         func(ctx context.Context, scores wagerdomain.ScoreTable) (results.OperationResult[wagerservice.RoundStatus, error], error)
	SelectTeeBoxFunc         func(ctx context.Context, name string) (results.OperationResult[coursedomain.TeeBox, error], error)
	PostRoundFunc            func(ctx context.Context) (results.OperationResult[wagerservice.PostSummary, error], error)
	UnpostRoundFunc          func(ctx context.Context) (results.OperationResult[wagerservice.PostSummary, error], error)
	RecordPuttingOutcomeFunc func(ctx context.Context, id wagerdomain.BetID, outcomeID string, winners []wagerdomain.PlayerID) (results.OperationResult[wagerservice.BetSummary, error], error)

	BalancesValue []wagerdomain.Balance
	BetsValue     []wagerservice.BetSummary
	RosterValue   []wagerdomain.Player
}

func NewFakeWagerService() *FakeWagerService {
	return &FakeWagerService{
		trace: []string{},
	}
}

func (f *FakeWagerService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeWagerService) Load(ctx context.Context) error {
	f.record("Load")
	return nil
}

func (f *FakeWagerService) AddPlayer(ctx context.Context, player wagerdomain.Player) (results.OperationResult[wagerdomain.Player, error], error) {
	f.record("AddPlayer")
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, player)
	}
	return results.SuccessResult[wagerdomain.Player, error](player), nil
}

func (f *FakeWagerService) AddBet(ctx context.Context, bet wagerdomain.Bet) (results.OperationResult[wagerservice.BetSummary, error], error) {
	f.record("AddBet")
	if f.AddBetFunc != nil {
		return f.AddBetFunc(ctx, bet)
	}
	return results.SuccessResult[wagerservice.BetSummary, error](wagerservice.BetSummary{ID: bet.ID(), Kind: bet.Kind()}), nil
}

func (f *FakeWagerService) RemoveBet(ctx context.Context, id wagerdomain.BetID) (results.OperationResult[wagerservice.BetSummary, error], error) {
	f.record("RemoveBet")
	if f.RemoveBetFunc != nil {
		return f.RemoveBetFunc(ctx, id)
	}
	return results.SuccessResult[wagerservice.BetSummary, error](wagerservice.BetSummary{ID: id}), nil
}

func (f *FakeWagerService) SetScore(ctx context.Context, player wagerdomain.PlayerID, hole int, token string) (results.OperationResult[wagerservice.RoundStatus, error], error) {
	f.record("SetScore")
	if f.SetScoreFunc != nil {
		return f.SetScoreFunc(ctx, player, hole, token)
	}
	return results.SuccessResult[wagerservice.RoundStatus, error](wagerservice.RoundStatus{}), nil
}

func (f *FakeWagerService) ImportScores(ctx context.Context, scores wagerdomain.ScoreTable) (results.OperationResult[wagerservice.RoundStatus, error], error) {
	f.record("ImportScores")
	if f.ImportScoresFunc != nil {
		return f.ImportScoresFunc(ctx, scores)
	}
	return results.SuccessResult[wagerservice.RoundStatus, error](wagerservice.RoundStatus{}), nil
}

func (f *FakeWagerService) SelectTeeBox(ctx context.Context, name string) (results.OperationResult[coursedomain.TeeBox, error], error) {
	f.record("SelectTeeBox")
	if f.SelectTeeBoxFunc != nil {
		return f.SelectTeeBoxFunc(ctx, name)
	}
	return results.SuccessResult[coursedomain.TeeBox, error](coursedomain.TeeBox{Name: name}), nil
}

func (f *FakeWagerService) PostRound(ctx context.Context) (results.OperationResult[wagerservice.PostSummary, error], error) {
	f.record("PostRound")
	if f.PostRoundFunc != nil {
		return f.PostRoundFunc(ctx)
	}
	return results.SuccessResult[wagerservice.PostSummary, error](wagerservice.PostSummary{}), nil
}

func (f *FakeWagerService) UnpostRound(ctx context.Context) (results.OperationResult[wagerservice.PostSummary, error], error) {
	f.record("UnpostRound")
	if f.UnpostRoundFunc != nil {
		return f.UnpostRoundFunc(ctx)
	}
	return results.SuccessResult[wagerservice.PostSummary, error](wagerservice.PostSummary{}), nil
}

func (f *FakeWagerService) RecordPuttingOutcome(ctx context.Context, id wagerdomain.BetID, outcomeID string, winners []wagerdomain.PlayerID) (results.OperationResult[wagerservice.BetSummary, error], error) {
	f.record("RecordPuttingOutcome")
	if f.RecordPuttingOutcomeFunc != nil {
		return f.RecordPuttingOutcomeFunc(ctx, id, outcomeID, winners)
	}
	return results.SuccessResult[wagerservice.BetSummary, error](wagerservice.BetSummary{ID: id}), nil
}

func (f *FakeWagerService) Balances(ctx context.Context) []wagerdomain.Balance {
	f.record("Balances")
	return f.BalancesValue
}

func (f *FakeWagerService) Balance(ctx context.Context, player wagerdomain.PlayerID) (wagerdomain.Balance, error) {
	f.record("Balance")
	for _, b := range f.BalancesValue {
		if b.Player.ID == player {
			return b, nil
		}
	}
	return wagerdomain.Balance{}, wagerservice.ErrUnknownPlayer
}

func (f *FakeWagerService) Bets(ctx context.Context) []wagerservice.BetSummary {
	f.record("Bets")
	return f.BetsValue
}

func (f *FakeWagerService) Roster(ctx context.Context) []wagerdomain.Player {
	f.record("Roster")
	return f.RosterValue
}

func (f *FakeWagerService) BalanceChart(ctx context.Context) ([]byte, error) {
	f.record("BalanceChart")
	return []byte("\x89PNG"), nil
}

// --- Accessors for assertions ---

func (f *FakeWagerService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ wagerservice.Service = (*FakeWagerService)(nil)
