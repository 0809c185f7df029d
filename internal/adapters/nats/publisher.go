package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/smokemap/smokemap/internal/core/domain"
)

const (
	SubjectRefreshed   = "spots.refreshed"
	SubjectSubmissions = "spots.submissions"
)

// RefreshedEvent announces a completed aggregation run.
type RefreshedEvent struct {
	Total       int       `json:"total"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the spots stream exists.
func NewPublisher(url string) (*Publisher, error) {
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

	cfg := nats.StreamConfig{
		Name:      "SPOTS",
		Subjects:  []string{"spots.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishSpotsRefreshed(_ context.Context, total int) error {
	data, err := json.Marshal(RefreshedEvent{Total: total, RefreshedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectRefreshed, data)
	return err
}

func (p *Publisher) PublishSubmission(_ context.Context, sub *domain.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectSubmissions, data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
