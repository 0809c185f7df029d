package ports

import (
	"context"
	"errors"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// SubmissionRepository persists user-submitted spots.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error
}

// KVStore is persistent key-value storage backing the cache manager.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound is returned by stores when a key or row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnsupportedMedia is returned when an upload content type is not allowed.
var ErrUnsupportedMedia = errors.New("unsupported media type")
