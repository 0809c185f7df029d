package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/smokemap/smokemap/internal/adapters/nats"
	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/pkg/config"
	"github.com/smokemap/smokemap/internal/pkg/logging"
)

// The notifier bridges spot events to an operations webhook: refresh
// completions for dashboard visibility and new submissions so reviewers
// hear about the queue without polling the API.
func main() {
	cfg, err := config.Load("smokemap-notifier")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("smokemap-notifier", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	notifier := &webhookNotifier{
		url: cfg.Notify.WebhookURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.Notify.TimeoutSeconds) * time.Second,
		},
	}
	if notifier.url == "" {
		slog.Warn("notify.webhook_url not set, events will only be logged")
	}

	if err := sub.SubscribeRefreshed(ctx, notifier.onRefreshed); err != nil {
		log.Fatalf("subscribe refreshed: %v", err)
	}
	if err := sub.SubscribeSubmissions(ctx, notifier.onSubmission); err != nil {
		log.Fatalf("subscribe submissions: %v", err)
	}

	slog.Info("notifier running", "nats_url", cfg.NATS.URL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutting down notifier", "signal", sig.String())
	cancel()
}

type webhookNotifier struct {
	url    string
	client *http.Client
}

func (n *webhookNotifier) onRefreshed(ctx context.Context, event *natsadapter.RefreshedEvent) error {
	slog.Info("dataset refreshed",
		"total", event.Total,
		"refreshed_at", event.RefreshedAt.Format(time.RFC3339))

	return n.post(ctx, map[string]any{
		"event":        "spots.refreshed",
		"total":        event.Total,
		"refreshed_at": event.RefreshedAt.Format(time.RFC3339),
	})
}

func (n *webhookNotifier) onSubmission(ctx context.Context, sub *domain.Submission) error {
	slog.Info("submission received",
		"id", sub.ID,
		"name", sub.Name,
		"status", string(sub.Status))

	return n.post(ctx, map[string]any{
		"event":   "spots.submission",
		"id":      sub.ID,
		"spot_id": sub.SpotID,
		"name":    sub.Name,
		"lat":     sub.Lat,
		"lng":     sub.Lng,
		"status":  string(sub.Status),
	})
}

// post delivers the payload to the webhook. A missing URL is not an error;
// returning one would Nak the message and redeliver it pointlessly.
func (n *webhookNotifier) post(ctx context.Context, payload map[string]any) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
