package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// Subscriber consumes spot events from NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeRefreshed delivers dataset refresh notifications, one per
// completed aggregation run.
func (s *Subscriber) SubscribeRefreshed(ctx context.Context, handler func(ctx context.Context, event *RefreshedEvent) error) error {
	sub, err := s.js.Subscribe(SubjectRefreshed, func(msg *nats.Msg) {
		var event RefreshedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &event); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("refresh-relay"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeSubmissions delivers user spot submissions for review tooling.
func (s *Subscriber) SubscribeSubmissions(ctx context.Context, handler func(ctx context.Context, sub *domain.Submission) error) error {
	sub, err := s.js.Subscribe(SubjectSubmissions, func(msg *nats.Msg) {
		var submission domain.Submission
		if err := json.Unmarshal(msg.Data, &submission); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &submission); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("submission-processor"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
