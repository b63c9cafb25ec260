package wagerservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	wagerdb "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/repositories"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/Black-And-White-Club/wager-bot/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "WagerService"

// WagerService owns the round ledger. Every mutation goes through it and is
// persisted before the call returns.
type WagerService struct {
	repo    wagerdb.Repository
	logger  *slog.Logger
	metrics WagerMetrics
	tracer  trace.Tracer
	db      *bun.DB

	course        coursedomain.Course
	defaultTee    string
	autoPostDelay time.Duration
	scheduler     AutoPostScheduler
	now           func() time.Time

	mu     sync.RWMutex
	ledger *wagerdomain.Ledger
}

// Options tune the service; zero values fall back to the home course.
type Options struct {
	Course        coursedomain.Course
	DefaultTeeBox string
	AutoPostDelay time.Duration
}

// NewWagerService creates a WagerService with an empty ledger. Call Load to
// restore persisted state.
func NewWagerService(
	repo wagerdb.Repository,
	logger *slog.Logger,
	metrics WagerMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts Options,
) *WagerService {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Course.TeeBoxes) == 0 {
		opts.Course = coursedomain.HomeCourse
	}
	if opts.DefaultTeeBox == "" {
		opts.DefaultTeeBox = opts.Course.TeeBoxes[0].Name
	}
	s := &WagerService{
		repo:          repo,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		db:            db,
		course:        opts.Course,
		defaultTee:    opts.DefaultTeeBox,
		autoPostDelay: opts.AutoPostDelay,
		now:           time.Now,
	}
	s.ledger = wagerdomain.NewLedger(s.teeBoxOrDefault(context.Background(), opts.DefaultTeeBox))
	return s
}

// UseScheduler enables auto-posting once every card in play is complete.
func (s *WagerService) UseScheduler(scheduler AutoPostScheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler = scheduler
}

func (s *WagerService) teeBoxOrDefault(ctx context.Context, name string) coursedomain.TeeBox {
	if tee, err := s.course.TeeBox(name); err == nil {
		return tee
	}
	if name != "" {
		s.logger.WarnContext(ctx, "Unknown tee box, using default",
			attr.String("tee_box", name),
			attr.String("default", s.defaultTee),
		)
	}
	if tee, err := s.course.TeeBox(s.defaultTee); err == nil {
		return tee
	}
	return s.course.TeeBoxes[0]
}

// Load replaces the in-memory ledger with the persisted one.
func (s *WagerService) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	_, err := withTelemetry(s, ctx, "Load", "ledger", func(ctx context.Context) (results.OperationResult[int, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
			doc, err := s.repo.LoadScores(ctx, db)
			if err != nil {
				return results.OperationResult[int, error]{}, fmt.Errorf("failed to load scores: %w", err)
			}
			bets, err := s.repo.LoadBets(ctx, db)
			if err != nil {
				return results.OperationResult[int, error]{}, fmt.Errorf("failed to load bets: %w", err)
			}

			ledger := wagerdomain.NewLedger(s.teeBoxOrDefault(ctx, doc.TeeBox))
			ledger.ImportScores(doc.Scores)
			for _, p := range doc.Roster {
				ledger.AddPlayer(p)
			}
			for _, b := range bets {
				if err := ledger.AddBet(b); err != nil {
					s.logger.WarnContext(ctx, "Skipping stored bet",
						attr.BetID(b.ID()),
						attr.String("kind", string(b.Kind())),
						attr.Error(err),
					)
				}
			}

			s.mu.Lock()
			s.ledger = ledger
			s.mu.Unlock()
			return results.SuccessResult[int, error](len(ledger.Bets)), nil
		})
	})
	return err
}

func (s *WagerService) AddPlayer(ctx context.Context, player wagerdomain.Player) (results.OperationResult[wagerdomain.Player, error], error) {
	return withTelemetry(s, ctx, "AddPlayer", player.ID.String(), func(ctx context.Context) (results.OperationResult[wagerdomain.Player, error], error) {
		return mutate(s, ctx, saveScores, func(l *wagerdomain.Ledger) (results.OperationResult[wagerdomain.Player, error], error) {
			l.AddPlayer(player)
			return results.SuccessResult[wagerdomain.Player, error](player), nil
		})
	})
}

func (s *WagerService) AddBet(ctx context.Context, bet wagerdomain.Bet) (results.OperationResult[BetSummary, error], error) {
	return withTelemetry(s, ctx, "AddBet", bet.ID().String(), func(ctx context.Context) (results.OperationResult[BetSummary, error], error) {
		return mutate(s, ctx, saveBets, func(l *wagerdomain.Ledger) (results.OperationResult[BetSummary, error], error) {
			if err := l.AddBet(bet); err != nil {
				return domainFailure[BetSummary](err)
			}
			return results.SuccessResult[BetSummary, error](summarize(bet)), nil
		})
	})
}

func (s *WagerService) RemoveBet(ctx context.Context, id wagerdomain.BetID) (results.OperationResult[BetSummary, error], error) {
	return withTelemetry(s, ctx, "RemoveBet", id.String(), func(ctx context.Context) (results.OperationResult[BetSummary, error], error) {
		return mutate(s, ctx, saveBets, func(l *wagerdomain.Ledger) (results.OperationResult[BetSummary, error], error) {
			bet, ok := l.Bet(id)
			if !ok {
				return domainFailure[BetSummary](fmt.Errorf("%w: %s", wagerdomain.ErrUnknownBet, id))
			}
			summary := summarize(bet)
			if err := l.RemoveBet(id); err != nil {
				return domainFailure[BetSummary](err)
			}
			return results.SuccessResult[BetSummary, error](summary), nil
		})
	})
}

func (s *WagerService) SetScore(ctx context.Context, player wagerdomain.PlayerID, hole int, token string) (results.OperationResult[RoundStatus, error], error) {
	return withTelemetry(s, ctx, "SetScore", player.String(), func(ctx context.Context) (results.OperationResult[RoundStatus, error], error) {
		return mutate(s, ctx, saveScores, func(l *wagerdomain.Ledger) (results.OperationResult[RoundStatus, error], error) {
			if err := l.SetScore(player, hole, token); err != nil {
				return domainFailure[RoundStatus](err)
			}
			return s.roundStatus(ctx, l)
		})
	})
}

// ImportScores overwrites the cards of every player in scores. Players not in
// scores keep their cards.
func (s *WagerService) ImportScores(ctx context.Context, scores wagerdomain.ScoreTable) (results.OperationResult[RoundStatus, error], error) {
	return withTelemetry(s, ctx, "ImportScores", fmt.Sprintf("%d cards", len(scores)), func(ctx context.Context) (results.OperationResult[RoundStatus, error], error) {
		return mutate(s, ctx, saveScores, func(l *wagerdomain.Ledger) (results.OperationResult[RoundStatus, error], error) {
			l.ImportScores(scores)
			return s.roundStatus(ctx, l)
		})
	})
}

func (s *WagerService) SelectTeeBox(ctx context.Context, name string) (results.OperationResult[coursedomain.TeeBox, error], error) {
	return withTelemetry(s, ctx, "SelectTeeBox", name, func(ctx context.Context) (results.OperationResult[coursedomain.TeeBox, error], error) {
		return mutate(s, ctx, saveScores, func(l *wagerdomain.Ledger) (results.OperationResult[coursedomain.TeeBox, error], error) {
			tee, err := s.course.TeeBox(name)
			if err != nil {
				return domainFailure[coursedomain.TeeBox](err)
			}
			l.TeeBox = tee
			return results.SuccessResult[coursedomain.TeeBox, error](tee), nil
		})
	})
}

func (s *WagerService) PostRound(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
	return withTelemetry(s, ctx, "PostRound", "round", func(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
		return s.postRound(ctx, false)
	})
}

// AutoPostRound posts the round only while it is complete and unposted.
// Otherwise it returns an ErrRoundNotReady failure and changes nothing.
func (s *WagerService) AutoPostRound(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
	return withTelemetry(s, ctx, "AutoPostRound", "round", func(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
		return s.postRound(ctx, true)
	})
}

func (s *WagerService) postRound(ctx context.Context, onlyWhenReady bool) (results.OperationResult[PostSummary, error], error) {
	result, err := mutate(s, ctx, saveBets, func(l *wagerdomain.Ledger) (results.OperationResult[PostSummary, error], error) {
		if onlyWhenReady {
			complete, posted := l.RoundComplete(), l.Posted()
			if !complete || posted {
				return results.FailureResult[PostSummary, error](
					fmt.Errorf("%w: complete=%t posted=%t", ErrRoundNotReady, complete, posted),
				), nil
			}
		}
		snap := wagerdomain.NewSnapshot(l.Scores, l.TeeBox)
		n := l.PostRound()
		return results.SuccessResult[PostSummary, error](PostSummary{Bets: n, ProcessingHash: snap.ProcessingHash()}), nil
	})
	if err == nil && result.IsSuccess() && s.metrics != nil {
		s.metrics.RecordRoundPosted(ctx, result.Success.Bets)
	}
	return result, err
}

func (s *WagerService) UnpostRound(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
	return withTelemetry(s, ctx, "UnpostRound", "round", func(ctx context.Context) (results.OperationResult[PostSummary, error], error) {
		return mutate(s, ctx, saveBets, func(l *wagerdomain.Ledger) (results.OperationResult[PostSummary, error], error) {
			return results.SuccessResult[PostSummary, error](PostSummary{Bets: l.UnpostRound()}), nil
		})
	})
}

// RecordPuttingOutcome applies one putting result. outcomeID identifies the
// result so a redelivered request is applied once; empty ids are never deduplicated.
func (s *WagerService) RecordPuttingOutcome(ctx context.Context, id wagerdomain.BetID, outcomeID string, winners []wagerdomain.PlayerID) (results.OperationResult[BetSummary, error], error) {
	return withTelemetry(s, ctx, "RecordPuttingOutcome", id.String(), func(ctx context.Context) (results.OperationResult[BetSummary, error], error) {
		return mutate(s, ctx, saveBets, func(l *wagerdomain.Ledger) (results.OperationResult[BetSummary, error], error) {
			if err := l.RecordPuttingOutcome(id, outcomeID, winners); err != nil {
				return domainFailure[BetSummary](err)
			}
			bet, _ := l.Bet(id)
			return results.SuccessResult[BetSummary, error](summarize(bet)), nil
		})
	})
}

func (s *WagerService) Balances(_ context.Context) []wagerdomain.Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Balances()
}

func (s *WagerService) Balance(ctx context.Context, player wagerdomain.PlayerID) (wagerdomain.Balance, error) {
	for _, b := range s.Balances(ctx) {
		if b.Player.ID == player {
			return b, nil
		}
	}
	return wagerdomain.Balance{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
}

func (s *WagerService) Bets(_ context.Context) []BetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]BetSummary, 0, len(s.ledger.Bets))
	for _, b := range s.ledger.Bets {
		out = append(out, summarize(b))
	}
	return out
}

// Roster lists registered players ordered by id.
func (s *WagerService) Roster(_ context.Context) []wagerdomain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]wagerdomain.Player, 0, len(s.ledger.Roster))
	for _, id := range s.ledger.Players() {
		if p, ok := s.ledger.Roster[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// roundStatus schedules an auto-post the first time every card in play is complete.
func (s *WagerService) roundStatus(ctx context.Context, l *wagerdomain.Ledger) (results.OperationResult[RoundStatus, error], error) {
	status := RoundStatus{Complete: l.RoundComplete(), Posted: l.Posted()}
	if status.Complete && !status.Posted && s.scheduler != nil {
		at := s.now().Add(s.autoPostDelay)
		if err := s.scheduler.ScheduleAutoPost(ctx, at); err != nil {
			return results.OperationResult[RoundStatus, error]{}, fmt.Errorf("failed to schedule auto-post: %w", err)
		}
		status.AutoPostAt = &at
	}
	return results.SuccessResult[RoundStatus, error](status), nil
}

func summarize(b wagerdomain.Bet) BetSummary {
	summary := BetSummary{
		ID:           b.ID(),
		Kind:         b.Kind(),
		Name:         b.Label(),
		Participants: slices.Clone(b.Participants()),
	}
	if p, ok := b.(wagerdomain.Postable); ok {
		summary.Posted = p.Posted()
	}
	return summary
}

// domainFailure reports expected rule violations as failures and anything
// else as an infrastructure error.
func domainFailure[S any](err error) (results.OperationResult[S, error], error) {
	for _, target := range []error{
		wagerdomain.ErrInvalidBet,
		wagerdomain.ErrUnknownBet,
		wagerdomain.ErrDuplicateBet,
		wagerdomain.ErrNotParticipant,
		wagerdomain.ErrInvalidHole,
		coursedomain.ErrUnknownTeeBox,
	} {
		if errors.Is(err, target) {
			return results.FailureResult[S, error](err), nil
		}
	}
	return results.OperationResult[S, error]{}, err
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// persistTarget selects which stored document a mutation rewrites.
type persistTarget int

const (
	saveScores persistTarget = iota
	saveBets
)

// mutate applies fn to a copy of the ledger under the write lock. The copy
// replaces the live ledger only once the affected document is persisted.
func mutate[S any](
	s *WagerService,
	ctx context.Context,
	target persistTarget,
	fn func(l *wagerdomain.Ledger) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.ledger.Clone()
	if err != nil {
		return results.OperationResult[S, error]{}, fmt.Errorf("failed to copy ledger: %w", err)
	}
	result, err := fn(draft)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	result, err = runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		if s.repo == nil {
			return result, nil
		}
		var saveErr error
		switch target {
		case saveScores:
			saveErr = s.repo.SaveScores(ctx, db, scoresDocument(draft))
		case saveBets:
			saveErr = s.repo.SaveBets(ctx, db, draft.Bets)
		}
		if saveErr != nil {
			return results.OperationResult[S, error]{}, saveErr
		}
		return result, nil
	})
	if err != nil {
		return result, err
	}
	s.ledger = draft
	return result, nil
}

func scoresDocument(l *wagerdomain.Ledger) wagerdb.ScoresDocument {
	roster := make([]wagerdomain.Player, 0, len(l.Roster))
	for _, id := range l.Players() {
		if p, ok := l.Roster[id]; ok {
			roster = append(roster, p)
		}
	}
	return wagerdb.ScoresDocument{
		TeeBox: l.TeeBox.Name,
		Scores: l.Scores,
		Roster: roster,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *WagerService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *WagerService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
