package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/pkg/geospatial"
	"github.com/smokemap/smokemap/internal/pkg/metrics"
)

// ErrInvalidSubmission wraps all submission validation failures.
var ErrInvalidSubmission = errors.New("invalid submission")

// SubmitRequest is a user-provided spot candidate.
type SubmitRequest struct {
	Name        string          `json:"name"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	Type        domain.SpotType `json:"type"`
	Memo        string          `json:"memo"`
	Photos      []string        `json:"photos"`
	SubmitterID string          `json:"-"`
}

// SubmissionService validates, sanitizes, and stores user submissions, then
// announces them for the review pipeline.
type SubmissionService struct {
	repo   ports.SubmissionRepository
	events ports.EventPublisher
}

func NewSubmissionService(repo ports.SubmissionRepository, events ports.EventPublisher) *SubmissionService {
	return &SubmissionService{repo: repo, events: events}
}

// Submit stores a pending submission and returns the assigned spot id.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmitRequest) (*domain.SubmissionResult, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		ID:          uuid.NewString(),
		SpotID:      uuid.NewString(),
		Name:        SanitizeInput(req.Name),
		Lat:         req.Lat,
		Lng:         req.Lng,
		Type:        req.Type,
		Memo:        SanitizeInput(req.Memo),
		Photos:      req.Photos,
		Status:      domain.SubmissionPending,
		SubmitterID: req.SubmitterID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	metrics.SubmissionsReceived.Inc()

	if s.events != nil {
		if err := s.events.PublishSubmission(ctx, sub); err != nil {
			slog.Warn("publish submission event failed", slog.String("error", err.Error()))
		}
	}

	return &domain.SubmissionResult{
		Success: true,
		Message: "submission received and pending review",
		SpotID:  sub.SpotID,
	}, nil
}

// GetByID returns one submission.
func (s *SubmissionService) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPending pages through submissions awaiting review.
func (s *SubmissionService) ListPending(ctx context.Context, limit, offset int) ([]domain.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByStatus(ctx, domain.SubmissionPending, limit, offset)
}

// Review marks a submission approved or rejected.
func (s *SubmissionService) Review(ctx context.Context, id string, status domain.SubmissionStatus) error {
	if status != domain.SubmissionApproved && status != domain.SubmissionRejected {
		return fmt.Errorf("%w: status must be approved or rejected", ErrInvalidSubmission)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func validateSubmission(req *SubmitRequest) error {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 || len([]rune(name)) > 100 {
		return fmt.Errorf("%w: name must be 2-100 characters", ErrInvalidSubmission)
	}
	if !geospatial.ValidCoordinates(req.Lat, req.Lng) {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidSubmission)
	}
	if req.Type != domain.TypeAllowed && req.Type != domain.TypeForbidden {
		return fmt.Errorf("%w: type must be allowed or forbidden", ErrInvalidSubmission)
	}
	if len([]rune(req.Memo)) > 500 {
		return fmt.Errorf("%w: memo must be at most 500 characters", ErrInvalidSubmission)
	}
	if len(req.Photos) < 1 || len(req.Photos) > 5 {
		return fmt.Errorf("%w: 1-5 photos required", ErrInvalidSubmission)
	}
	return nil
}

var (
	scriptTagRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	eventHandlerRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	badSchemeRe    = regexp.MustCompile(`(?i)(javascript|data):`)
)

// SanitizeInput strips script tags, inline event handlers, and executable
// URL schemes from free-text fields.
func SanitizeInput(text string) string {
	text = scriptTagRe.ReplaceAllString(text, "")
	text = eventHandlerRe.ReplaceAllString(text, "")
	text = badSchemeRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
