package wagerhandlers

import (
	"context"

	wagerevents "github.com/Black-And-White-Club/wager-bot/pkg/events/wager"
	"github.com/Black-And-White-Club/wager-bot/pkg/handlerwrapper"
)

// Handlers defines the interface for wager event handlers.
type Handlers interface {
	HandlePlayerRegisterRequest(ctx context.Context, payload *wagerevents.PlayerRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBetPlaceRequest(ctx context.Context, payload *wagerevents.BetPlaceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBetRemoveRequest(ctx context.Context, payload *wagerevents.BetRemoveRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleScoreUpdateRequest writes one hole and republishes balances.
	HandleScoreUpdateRequest(ctx context.Context, payload *wagerevents.ScoreUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScoresImportRequest(ctx context.Context, payload *wagerevents.ScoresImportRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTeeBoxSelectRequest(ctx context.Context, payload *wagerevents.TeeBoxSelectRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleRoundPostRequest(ctx context.Context, payload *wagerevents.RoundPostRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundUnpostRequest(ctx context.Context, payload *wagerevents.RoundUnpostRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePuttingOutcomeRequest(ctx context.Context, payload *wagerevents.PuttingOutcomeRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleBalancesRequest answers on the request's reply_to subject when set.
	HandleBalancesRequest(ctx context.Context, payload *wagerevents.BalancesRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
