package ports

import (
	"context"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// SpotProvider fetches and normalizes spot records from one external source.
// Implementations never panic across this boundary; a fetch or parse failure
// is returned as an error and the caller treats it as zero records.
type SpotProvider interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.SmokingSpot, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishSpotsRefreshed(ctx context.Context, total int) error
	PublishSubmission(ctx context.Context, sub *domain.Submission) error
}

// UploadURLSigner issues presigned upload URLs for spot photos.
type UploadURLSigner interface {
	SignUpload(ctx context.Context, contentType string) (*UploadTarget, error)
}

// UploadTarget is a presigned upload slot returned to the client.
type UploadTarget struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}
