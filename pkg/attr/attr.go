// Package attr provides slog attribute helpers shared by every module.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

// CorrelationIDKey is the context key under which handlers store the message correlation id.
const CorrelationIDKey ctxKey = "correlation_id"

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Topic(topic string) slog.Attr { return slog.String("topic", topic) }

func UUID(key string, id uuid.UUID) slog.Attr { return slog.String(key, id.String()) }

func PlayerID(id uuid.UUID) slog.Attr { return UUID("player_id", id) }

func BetID(id uuid.UUID) slog.Attr { return UUID("bet_id", id) }

// Error returns an "error" attribute, or an empty attribute for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// ExtractCorrelationID pulls the correlation id off the context if one is present.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if ctx == nil {
		return slog.Attr{}
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.Attr{}
}
