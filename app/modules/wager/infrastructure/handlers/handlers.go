package wagerhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/parsers"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	wagerevents "github.com/Black-And-White-Club/wager-bot/pkg/events/wager"
	"github.com/Black-And-White-Club/wager-bot/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/wager-bot/pkg/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// WagerHandlers implements the Handlers interface.
type WagerHandlers struct {
	service wagerservice.Service
	parsers parsers.ParserFactory
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewWagerHandlers creates a new WagerHandlers instance.
func NewWagerHandlers(
	service wagerservice.Service,
	parserFactory parsers.ParserFactory,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &WagerHandlers{
		service: service,
		parsers: parserFactory,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *WagerHandlers) HandlePlayerRegisterRequest(ctx context.Context, payload *wagerevents.PlayerRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandlePlayerRegisterRequest")
	defer span.End()

	player := wagerdomain.Player{
		ID:        payload.PlayerID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Nickname:  payload.Nickname,
	}
	if _, err := h.service.AddPlayer(ctx, player); err != nil {
		return nil, err
	}
	return []handlerwrapper.Result{h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1)}, nil
}

func (h *WagerHandlers) HandleBetPlaceRequest(ctx context.Context, payload *wagerevents.BetPlaceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleBetPlaceRequest")
	defer span.End()

	bet, err := decodeBet(wagerdomain.Kind(payload.Kind), payload.Bet)
	if err != nil {
		h.logger.WarnContext(ctx, "Rejecting undecodable bet",
			attr.ExtractCorrelationID(ctx),
			attr.String("kind", payload.Kind),
			attr.Error(err),
		)
		return []handlerwrapper.Result{requestFailed(wagerevents.BetPlaceRequestedV1, err)}, nil
	}

	result, err := h.service.AddBet(ctx, bet)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.BetPlaceRequestedV1, *result.Failure)}, nil
	}

	h.logger.InfoContext(ctx, "Bet placed",
		attr.ExtractCorrelationID(ctx),
		attr.BetID(result.Success.ID),
		attr.String("kind", string(result.Success.Kind)),
	)

	return []handlerwrapper.Result{
		{
			Topic: wagerevents.BetPlacedV1,
			Payload: &wagerevents.BetPlacedPayloadV1{
				BetID:        result.Success.ID,
				Kind:         string(result.Success.Kind),
				Name:         result.Success.Name,
				Participants: result.Success.Participants,
			},
		},
		h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1),
	}, nil
}

func (h *WagerHandlers) HandleBetRemoveRequest(ctx context.Context, payload *wagerevents.BetRemoveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleBetRemoveRequest")
	defer span.End()

	result, err := h.service.RemoveBet(ctx, payload.BetID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.BetRemoveRequestedV1, *result.Failure)}, nil
	}

	return []handlerwrapper.Result{
		{
			Topic: wagerevents.BetRemovedV1,
			Payload: &wagerevents.BetRemovedPayloadV1{
				BetID: result.Success.ID,
				Kind:  string(result.Success.Kind),
			},
		},
		h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1),
	}, nil
}

func (h *WagerHandlers) HandleScoreUpdateRequest(ctx context.Context, payload *wagerevents.ScoreUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleScoreUpdateRequest")
	defer span.End()

	result, err := h.service.SetScore(ctx, payload.PlayerID, payload.Hole, payload.Score)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.ScoreUpdateRequestedV1, *result.Failure)}, nil
	}
	return []handlerwrapper.Result{h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1)}, nil
}

func (h *WagerHandlers) HandleScoresImportRequest(ctx context.Context, payload *wagerevents.ScoresImportRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleScoresImportRequest")
	defer span.End()

	parser, err := h.parsers.GetParser(payload.FileName)
	if err != nil {
		return []handlerwrapper.Result{requestFailed(wagerevents.ScoresImportRequestedV1, err)}, nil
	}
	card, err := parser.Parse(payload.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "Scorecard could not be parsed",
			attr.ExtractCorrelationID(ctx),
			attr.String("file_name", payload.FileName),
			attr.Error(err),
		)
		return []handlerwrapper.Result{requestFailed(wagerevents.ScoresImportRequestedV1, err)}, nil
	}

	table, unmatched := card.ScoreTable(h.service.Roster(ctx))
	if len(unmatched) > 0 {
		h.logger.WarnContext(ctx, "Scorecard rows without a registered player",
			attr.ExtractCorrelationID(ctx),
			attr.Any("names", unmatched),
		)
	}
	if len(table) == 0 {
		return []handlerwrapper.Result{requestFailed(wagerevents.ScoresImportRequestedV1,
			fmt.Errorf("no scorecard row matched a registered player"))}, nil
	}

	result, err := h.service.ImportScores(ctx, table)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.ScoresImportRequestedV1, *result.Failure)}, nil
	}

	return []handlerwrapper.Result{
		{
			Topic: wagerevents.ScoresImportedV1,
			Payload: &wagerevents.ScoresImportedPayloadV1{
				Players:   len(table),
				Unmatched: unmatched,
				Complete:  result.Success.Complete,
			},
		},
		h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1),
	}, nil
}

func (h *WagerHandlers) HandleTeeBoxSelectRequest(ctx context.Context, payload *wagerevents.TeeBoxSelectRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleTeeBoxSelectRequest")
	defer span.End()

	result, err := h.service.SelectTeeBox(ctx, payload.TeeBox)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.TeeBoxSelectRequestedV1, *result.Failure)}, nil
	}
	return []handlerwrapper.Result{h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1)}, nil
}

func (h *WagerHandlers) HandleRoundPostRequest(ctx context.Context, payload *wagerevents.RoundPostRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleRoundPostRequest")
	defer span.End()

	result, err := h.service.PostRound(ctx)
	if err != nil {
		return nil, err
	}
	return h.roundPosted(ctx, true, result)
}

func (h *WagerHandlers) HandleRoundUnpostRequest(ctx context.Context, payload *wagerevents.RoundUnpostRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleRoundUnpostRequest")
	defer span.End()

	result, err := h.service.UnpostRound(ctx)
	if err != nil {
		return nil, err
	}
	return h.roundPosted(ctx, false, result)
}

func (h *WagerHandlers) roundPosted(ctx context.Context, posted bool, result results.OperationResult[wagerservice.PostSummary, error]) ([]handlerwrapper.Result, error) {
	if !result.IsSuccess() {
		return nil, errors.New("round post returned no summary")
	}
	h.logger.InfoContext(ctx, "Round posting changed",
		attr.ExtractCorrelationID(ctx),
		attr.Bool("posted", posted),
		attr.Int("bets", result.Success.Bets),
	)
	return []handlerwrapper.Result{
		{
			Topic: wagerevents.RoundPostedV1,
			Payload: &wagerevents.RoundPostedPayloadV1{
				Posted:         posted,
				Bets:           result.Success.Bets,
				ProcessingHash: result.Success.ProcessingHash,
			},
		},
		h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1),
	}, nil
}

func (h *WagerHandlers) HandlePuttingOutcomeRequest(ctx context.Context, payload *wagerevents.PuttingOutcomeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandlePuttingOutcomeRequest")
	defer span.End()

	outcomeID, _ := ctx.Value(handlerwrapper.CtxKeyMessageID).(string)
	result, err := h.service.RecordPuttingOutcome(ctx, payload.BetID, outcomeID, payload.Winners)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{requestFailed(wagerevents.PuttingOutcomeRequestedV1, *result.Failure)}, nil
	}
	return []handlerwrapper.Result{h.balancesUpdated(ctx, wagerevents.BalancesUpdatedV1)}, nil
}

func (h *WagerHandlers) HandleBalancesRequest(ctx context.Context, _ *wagerevents.BalancesRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "WagerHandlers.HandleBalancesRequest")
	defer span.End()

	// Determine reply topic (dynamic ReplyTo takes precedence over static constant)
	replyTopic := wagerevents.BalancesUpdatedV1
	if rt, ok := ctx.Value(handlerwrapper.CtxKeyReplyTo).(string); ok && rt != "" {
		replyTopic = rt
	}
	return []handlerwrapper.Result{h.balancesUpdated(ctx, replyTopic)}, nil
}

func (h *WagerHandlers) balancesUpdated(ctx context.Context, topic string) handlerwrapper.Result {
	balances := h.service.Balances(ctx)
	payload := &wagerevents.BalancesUpdatedPayloadV1{
		Balances: make([]wagerevents.BalanceV1, 0, len(balances)),
	}
	for _, b := range balances {
		payload.Balances = append(payload.Balances, wagerevents.BalanceV1{
			PlayerID:  b.Player.ID,
			Name:      b.Player.DisplayName(),
			Main:      b.Main,
			Side:      b.Side,
			Projected: b.Projected,
		})
	}
	for _, bet := range h.service.Bets(ctx) {
		if bet.Posted {
			payload.Posted = true
			break
		}
	}
	return handlerwrapper.Result{Topic: topic, Payload: payload}
}

func requestFailed(topic string, err error) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: wagerevents.RequestFailedV1,
		Payload: &wagerevents.RequestFailedPayloadV1{
			Topic:  topic,
			Reason: err.Error(),
		},
	}
}

// decodeBet builds the bet variant for kind from its JSON form, assigning a
// fresh id when the sender left it out.
func decodeBet(kind wagerdomain.Kind, raw json.RawMessage) (wagerdomain.Bet, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: bet must be a JSON object: %v", wagerdomain.ErrInvalidBet, err)
	}
	var id uuid.UUID
	if rawID, ok := fields["id"]; ok {
		if err := json.Unmarshal(rawID, &id); err != nil {
			return nil, fmt.Errorf("%w: bad id: %v", wagerdomain.ErrInvalidBet, err)
		}
	}
	if id == uuid.Nil {
		encoded, err := json.Marshal(uuid.New())
		if err != nil {
			return nil, err
		}
		fields["id"] = encoded
	}
	normalized, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	bet, err := wagerdomain.NewBetOfKind(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(normalized, bet); err != nil {
		return nil, fmt.Errorf("%w: %v", wagerdomain.ErrInvalidBet, err)
	}
	return bet, nil
}
