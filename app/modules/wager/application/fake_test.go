package wagerservice

import (
	"context"
	"time"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	wagerdb "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Wager Repo
// ------------------------

type FakeWagerRepo struct {
	trace []string

	LoadScoresFunc func(ctx context.Context, db bun.IDB) (wagerdb.ScoresDocument, error)
	SaveScoresFunc func(ctx context.Context, db bun.IDB, doc wagerdb.ScoresDocument) error
	LoadBetsFunc   func(ctx context.Context, db bun.IDB) ([]wagerdomain.Bet, error)
	SaveBetsFunc   func(ctx context.Context, db bun.IDB, bets []wagerdomain.Bet) error
}

func NewFakeWagerRepo() *FakeWagerRepo {
	return &FakeWagerRepo{
		trace: []string{},
	}
}

func (f *FakeWagerRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeWagerRepo) LoadScores(ctx context.Context, db bun.IDB) (wagerdb.ScoresDocument, error) {
	f.record("LoadScores")
	if f.LoadScoresFunc != nil {
		return f.LoadScoresFunc(ctx, db)
	}
	return wagerdb.EmptyScores(), nil
}

func (f *FakeWagerRepo) SaveScores(ctx context.Context, db bun.IDB, doc wagerdb.ScoresDocument) error {
	f.record("SaveScores")
	if f.SaveScoresFunc != nil {
		return f.SaveScoresFunc(ctx, db, doc)
	}
	return nil
}

func (f *FakeWagerRepo) LoadBets(ctx context.Context, db bun.IDB) ([]wagerdomain.Bet, error) {
	f.record("LoadBets")
	if f.LoadBetsFunc != nil {
		return f.LoadBetsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeWagerRepo) SaveBets(ctx context.Context, db bun.IDB, bets []wagerdomain.Bet) error {
	f.record("SaveBets")
	if f.SaveBetsFunc != nil {
		return f.SaveBetsFunc(ctx, db, bets)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeWagerRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ wagerdb.Repository = (*FakeWagerRepo)(nil)

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	Scheduled []time.Time
	Err       error
}

func (f *FakeScheduler) ScheduleAutoPost(_ context.Context, at time.Time) error {
	if f.Err != nil {
		return f.Err
	}
	f.Scheduled = append(f.Scheduled, at)
	return nil
}

var _ AutoPostScheduler = (*FakeScheduler)(nil)
