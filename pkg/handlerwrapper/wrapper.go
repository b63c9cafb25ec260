// Package handlerwrapper adapts typed handlers to Watermill message handlers.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	// CtxKeyReplyTo holds the reply_to metadata of the incoming message, if any.
	CtxKeyReplyTo ctxKey = "reply_to"
	// CtxKeyMessageID holds the UUID of the incoming message. It is stable
	// across redeliveries.
	CtxKeyMessageID ctxKey = "message_id"
)

const (
	MetadataCorrelationID = "correlation_id"
	MetadataReplyTo       = "reply_to"
	MetadataTopic         = "topic"
)

// Result is one outgoing message produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

var validate = validator.New()

// WrapTyped decodes and validates the JSON payload into T, runs handler and
// publishes every returned Result. Undecodable or invalid payloads are acked
// and dropped; handler errors nack the message for redelivery.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()
		if tracer != nil {
			var span trace.Span
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
			))
			defer span.End()
		}

		correlationID := msg.Metadata.Get(MetadataCorrelationID)
		if correlationID == "" {
			correlationID = msg.UUID
		}
		ctx = attr.WithCorrelationID(ctx, correlationID)
		ctx = context.WithValue(ctx, CtxKeyMessageID, msg.UUID)
		if rt := msg.Metadata.Get(MetadataReplyTo); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			return nil
		}
		if err := validate.Struct(payload); err != nil {
			logger.WarnContext(ctx, "Dropping invalid message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			return nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			return fmt.Errorf("%s: %w", handlerName, err)
		}

		for _, res := range results {
			out, err := NewMessage(correlationID, res)
			if err != nil {
				return fmt.Errorf("%s: %w", handlerName, err)
			}
			if err := publisher.Publish(res.Topic, out); err != nil {
				return fmt.Errorf("%s: failed to publish %s: %w", handlerName, res.Topic, err)
			}
			logger.DebugContext(ctx, "Published handler result",
				attr.ExtractCorrelationID(ctx),
				attr.Topic(res.Topic),
			)
		}
		return nil
	}
}

// NewMessage marshals a Result into a Watermill message carrying the correlation id.
func NewMessage(correlationID string, res Result) (*message.Message, error) {
	body, err := json.Marshal(res.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", res.Topic, err)
	}
	out := message.NewMessage(watermill.NewUUID(), body)
	out.Metadata.Set(MetadataCorrelationID, correlationID)
	out.Metadata.Set(MetadataTopic, res.Topic)
	for k, v := range res.Metadata {
		out.Metadata.Set(k, v)
	}
	return out, nil
}
