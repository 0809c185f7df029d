package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
)

// LoaderOptions tunes the loader controller.
type LoaderOptions struct {
	// ReplaceAlways adopts every successful background refresh result.
	// Default is the conservative policy: replace only when the fresh set
	// is strictly larger, so a flaky half-failed run never shrinks the map.
	ReplaceAlways bool
}

// LoaderService orchestrates aggregation and caching behind one asynchronous
// load operation with stale-while-revalidate semantics. It owns the current
// collection; consumers get read-only snapshots.
type LoaderService struct {
	agg    Aggregator
	cache  *CacheManager
	events ports.EventPublisher
	opts   LoaderOptions

	inFlight atomic.Bool
	bg       sync.WaitGroup

	mu          sync.RWMutex
	spots       []domain.SmokingSpot
	state       domain.LoadState
	lastUpdated time.Time
}

func NewLoaderService(agg Aggregator, cache *CacheManager, events ports.EventPublisher, opts LoaderOptions) *LoaderService {
	return &LoaderService{
		agg:    agg,
		cache:  cache,
		events: events,
		opts:   opts,
		state:  domain.LoadState{Phase: domain.PhaseIdle},
	}
}

// Load serves the cached collection when valid and refreshes it in the
// background; on a cache miss it runs the full aggregation synchronously.
// A load while another is in flight is a no-op.
func (s *LoaderService) Load(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil
	}

	s.setState(domain.LoadState{Phase: domain.PhaseCheckingCache, IsLoading: true, Progress: 0, Message: "checking cache"})

	cached, savedAt, ok := s.cache.Load(ctx)
	if ok {
		s.swap(cached, savedAt)
		s.setState(domain.LoadState{
			Phase:    domain.PhaseReady,
			Progress: 100,
			Message:  fmt.Sprintf("%d spots (cached)", len(cached)),
		})

		// revalidate in the background; the handle is retained so shutdown
		// and tests can join it
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			defer s.inFlight.Store(false)
			s.backgroundRefresh(context.WithoutCancel(ctx))
		}()
		return nil
	}

	defer s.inFlight.Store(false)
	return s.runFull(ctx)
}

// Refresh forces a full aggregation run, bypassing the cache shortcut.
// No-op when a load or refresh is already in flight.
func (s *LoaderService) Refresh(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer s.inFlight.Store(false)
	return s.runFull(ctx)
}

// runFull aggregates, persists, and publishes. On failure it falls back to
// any cached data regardless of TTL; only when nothing at all is available
// does it surface a terminal error.
func (s *LoaderService) runFull(ctx context.Context) error {
	s.setState(domain.LoadState{Phase: domain.PhaseFetching, IsLoading: true, Progress: 10, Message: "loading data sources"})

	spots, err := s.agg.Aggregate(ctx)
	if err != nil {
		stale, savedAt, ok := s.cache.LoadStale(ctx)
		if ok {
			slog.Warn("aggregation failed, serving stale cache",
				slog.String("error", err.Error()),
				slog.Int("spots", len(stale)))
			s.swap(stale, savedAt)
			s.setState(domain.LoadState{
				Phase:    domain.PhaseReady,
				Progress: 100,
				Message:  fmt.Sprintf("%d spots (stale cache)", len(stale)),
				Error:    err.Error(),
			})
			return nil
		}

		s.setState(domain.LoadState{Phase: domain.PhaseError, Error: err.Error()})
		return err
	}

	s.setState(domain.LoadState{Phase: domain.PhaseProcessing, IsLoading: true, Progress: 90, Message: "processing"})

	now := time.Now()
	s.swap(spots, now)
	s.cache.Save(ctx, spots)
	s.publishRefreshed(ctx, len(spots))

	s.setState(domain.LoadState{
		Phase:    domain.PhaseReady,
		Progress: 100,
		Message:  fmt.Sprintf("%d spots loaded", len(spots)),
	})
	return nil
}

// backgroundRefresh runs after a cache hit. The fresh result replaces the
// visible set only under the configured policy, so a background run can
// never silently shrink what users already see.
func (s *LoaderService) backgroundRefresh(ctx context.Context) {
	fresh, err := s.agg.Aggregate(ctx)
	if err != nil {
		slog.Warn("background refresh failed", slog.String("error", err.Error()))
		return
	}

	s.mu.RLock()
	current := len(s.spots)
	s.mu.RUnlock()

	if !s.opts.ReplaceAlways && len(fresh) <= current {
		slog.Info("background refresh discarded",
			slog.Int("fresh", len(fresh)),
			slog.Int("current", current))
		return
	}

	now := time.Now()
	s.swap(fresh, now)
	s.cache.Save(ctx, fresh)
	s.publishRefreshed(ctx, len(fresh))

	s.setState(domain.LoadState{
		Phase:    domain.PhaseReady,
		Progress: 100,
		Message:  fmt.Sprintf("%d spots loaded", len(fresh)),
	})
}

func (s *LoaderService) publishRefreshed(ctx context.Context, total int) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSpotsRefreshed(ctx, total); err != nil {
		slog.Warn("publish refresh event failed", slog.String("error", err.Error()))
	}
}

func (s *LoaderService) swap(spots []domain.SmokingSpot, updatedAt time.Time) {
	s.mu.Lock()
	s.spots = spots
	s.lastUpdated = updatedAt
	s.mu.Unlock()
}

func (s *LoaderService) setState(state domain.LoadState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Spots returns a copy of the current collection.
func (s *LoaderService) Spots() []domain.SmokingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SmokingSpot, len(s.spots))
	copy(out, s.spots)
	return out
}

// State returns the current loader state.
func (s *LoaderService) State() domain.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastUpdated returns when the visible collection was produced; zero when
// nothing has loaded yet.
func (s *LoaderService) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Statistics derives summary counts over the current collection.
func (s *LoaderService) Statistics() domain.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStatistics(s.spots)
}

// Wait joins any in-flight background refresh. Used on shutdown and in
// tests.
func (s *LoaderService) Wait() {
	s.bg.Wait()
}
