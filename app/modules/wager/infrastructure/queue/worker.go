package wagerqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	wagerevents "github.com/Black-And-White-Club/wager-bot/pkg/events/wager"
	"github.com/Black-And-White-Club/wager-bot/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/wager-bot/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
)

// Poster is the slice of the wager service the worker needs. AutoPostRound
// must refuse with wagerservice.ErrRoundNotReady unless the round is complete
// and unposted.
type Poster interface {
	AutoPostRound(ctx context.Context) (results.OperationResult[wagerservice.PostSummary, error], error)
}

// AutoPostWorker posts a finished round and announces it on the event bus.
// Rounds that were reopened or posted by hand during the delay are skipped.
type AutoPostWorker struct {
	river.WorkerDefaults[AutoPostJob]
	poster    Poster
	publisher message.Publisher
	logger    *slog.Logger
}

func NewAutoPostWorker(logger *slog.Logger, poster Poster, publisher message.Publisher) *AutoPostWorker {
	return &AutoPostWorker{poster: poster, publisher: publisher, logger: logger}
}

func (w *AutoPostWorker) Work(ctx context.Context, job *river.Job[AutoPostJob]) error {
	w.logger.InfoContext(ctx, "Auto-posting round",
		attr.String("round_date", job.Args.RoundDate),
		attr.Int("attempt", job.Attempt),
	)

	result, err := w.poster.AutoPostRound(ctx)
	if err != nil {
		return fmt.Errorf("auto-post failed: %w", err)
	}
	if result.IsFailure() {
		if errors.Is(*result.Failure, wagerservice.ErrRoundNotReady) {
			w.logger.InfoContext(ctx, "Skipping auto-post",
				attr.String("round_date", job.Args.RoundDate),
				attr.Error(*result.Failure),
			)
			return nil
		}
		return fmt.Errorf("auto-post failed: %w", *result.Failure)
	}
	if !result.IsSuccess() {
		return fmt.Errorf("auto-post returned no summary")
	}

	msg, err := handlerwrapper.NewMessage(fmt.Sprintf("auto-post-%d", job.ID), handlerwrapper.Result{
		Topic: wagerevents.RoundPostedV1,
		Payload: &wagerevents.RoundPostedPayloadV1{
			Posted:         true,
			Bets:           result.Success.Bets,
			ProcessingHash: result.Success.ProcessingHash,
		},
	})
	if err != nil {
		return err
	}
	if err := w.publisher.Publish(wagerevents.RoundPostedV1, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", wagerevents.RoundPostedV1, err)
	}

	w.logger.InfoContext(ctx, "Round auto-posted",
		attr.Int("bets", result.Success.Bets),
		attr.String("processing_hash", result.Success.ProcessingHash),
	)
	return nil
}
