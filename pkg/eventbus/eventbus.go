// Package eventbus provides the Watermill publisher/subscriber pair used by every module.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus is both a Watermill publisher and subscriber, so it can be handed
// directly to message.Router handlers.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type natsEventBus struct {
	publisher  *nats.Publisher
	subscriber *nats.Subscriber
	logger     *slog.Logger
}

var _ EventBus = (*natsEventBus)(nil)

// NewNATSEventBus connects a core-NATS publisher and a queue-grouped subscriber.
func NewNATSEventBus(natsURL, queueGroup string, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", slog.String("subject", s.Subject), slog.Any("error", err))
				return
			}
			logger.Error("Error in connection", slog.Any("error", err))
		}),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &nats.NATSMarshaler{},
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: queueGroup,
			SubscribersCount: 1,
			NatsOptions:      options,
			Unmarshaler:      &nats.NATSMarshaler{},
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &natsEventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

func (b *natsEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	b.logger.Debug("Publishing messages", slog.String("topic", topic), slog.Int("count", len(messages)))
	return b.publisher.Publish(topic, messages...)
}

func (b *natsEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.logger.Info("Subscribing to subject", slog.String("subject", topic))
	return b.subscriber.Subscribe(ctx, topic)
}

func (b *natsEventBus) Close() error {
	var firstErr error
	if err := b.subscriber.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close subscriber: %w", err)
	}
	if err := b.publisher.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close publisher: %w", err)
	}
	return firstErr
}

// NewInMemoryEventBus returns a process-local bus for tests.
func NewInMemoryEventBus(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}
