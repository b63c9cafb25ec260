package wagerrouter

import (
	"context"
	"log/slog"

	wagerhandlers "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/handlers"
	"github.com/Black-And-White-Club/wager-bot/pkg/eventbus"
	wagerevents "github.com/Black-And-White-Club/wager-bot/pkg/events/wager"
	"github.com/Black-And-White-Club/wager-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// WagerRouter handles Watermill handler registration for wager events.
type WagerRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewWagerRouter creates a new WagerRouter.
func NewWagerRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *WagerRouter {
	return &WagerRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *WagerRouter) Configure(_ context.Context, handlers wagerhandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandlers wires NATS topics to handler methods.
func (r *WagerRouter) registerHandlers(handlers wagerhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	r.logger.Info("Registering wager module handlers",
		slog.String("bet_place_subject", wagerevents.BetPlaceRequestedV1),
		slog.String("score_update_subject", wagerevents.ScoreUpdateRequestedV1),
		slog.String("round_post_subject", wagerevents.RoundPostRequestedV1),
	)

	registerHandler(deps, wagerevents.PlayerRegisterRequestedV1, handlers.HandlePlayerRegisterRequest)
	registerHandler(deps, wagerevents.BetPlaceRequestedV1, handlers.HandleBetPlaceRequest)
	registerHandler(deps, wagerevents.BetRemoveRequestedV1, handlers.HandleBetRemoveRequest)
	registerHandler(deps, wagerevents.ScoreUpdateRequestedV1, handlers.HandleScoreUpdateRequest)
	registerHandler(deps, wagerevents.ScoresImportRequestedV1, handlers.HandleScoresImportRequest)
	registerHandler(deps, wagerevents.TeeBoxSelectRequestedV1, handlers.HandleTeeBoxSelectRequest)
	registerHandler(deps, wagerevents.RoundPostRequestedV1, handlers.HandleRoundPostRequest)
	registerHandler(deps, wagerevents.RoundUnpostRequestedV1, handlers.HandleRoundUnpostRequest)
	registerHandler(deps, wagerevents.PuttingOutcomeRequestedV1, handlers.HandlePuttingOutcomeRequest)
	registerHandler(deps, wagerevents.BalancesRequestedV1, handlers.HandleBalancesRequest)

	r.logger.Info("Wager module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "wager." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// Close shuts down the router.
func (r *WagerRouter) Close() error {
	return r.router.Close()
}
