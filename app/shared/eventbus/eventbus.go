// Package eventbus wraps the NATS JetStream publisher/subscriber pair behind
// a single interface so modules can publish and the watermill router can
// subscribe without caring about the transport.
package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// EventBus is the publish/subscribe contract used throughout the app.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// NatsEventBus is a JetStream-backed EventBus.
type NatsEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
}

var _ EventBus = (*NatsEventBus)(nil)

// NewNatsEventBus connects a JetStream publisher and subscriber to the given
// NATS URL. Streams are auto-provisioned per subject.
func NewNatsEventBus(natsURL string, appName string, logger watermill.LoggerAdapter) (*NatsEventBus, error) {
	marshaler := &wmnats.GobMarshaler{}
	options := []nc.Option{
		nc.Name(appName),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := wmnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Marshaler:         marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Unmarshaler:       marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
			AckWaitTimeout:    30 * time.Second,
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &NatsEventBus{publisher: publisher, subscriber: subscriber}, nil
}

// Publish sends the messages to the given topic.
func (b *NatsEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if err := b.publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("failed to publish message %s to %s: %w", msg.UUID, topic, err)
		}
	}
	return nil
}

// Subscribe returns a channel of messages for the given topic.
func (b *NatsEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return ch, nil
}

// Close shuts down both halves of the bus.
func (b *NatsEventBus) Close() error {
	pubErr := b.publisher.Close()
	subErr := b.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// WatermillSubscriber exposes the raw subscriber for router wiring.
func (b *NatsEventBus) WatermillSubscriber() message.Subscriber {
	return b.subscriber
}
