package usecases

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/pkg/geospatial"
	"github.com/smokemap/smokemap/internal/pkg/metrics"
)

// ErrAllSourcesFailed is returned when no provider produced any records.
var ErrAllSourcesFailed = errors.New("all data sources failed")

// Aggregator produces the merged, deduplicated spot collection.
type Aggregator interface {
	Aggregate(ctx context.Context) ([]domain.SmokingSpot, error)
}

// AggregatorService fans out to all providers and merges their records with
// two-key deduplication. The static provider runs first so bundled records
// win dedup ties against API records at the same location.
type AggregatorService struct {
	static    ports.SpotProvider
	providers []ports.SpotProvider
}

// NewAggregatorService creates an AggregatorService. static may be nil when
// no bundled dataset is configured.
func NewAggregatorService(static ports.SpotProvider, providers []ports.SpotProvider) *AggregatorService {
	return &AggregatorService{static: static, providers: providers}
}

// dedupSet tracks seen ids and rounded coordinate keys. A spot is admitted
// only when both keys are unseen; first insertion wins.
type dedupSet struct {
	ids    map[string]struct{}
	coords map[string]struct{}
	spots  []domain.SmokingSpot
}

func newDedupSet() *dedupSet {
	return &dedupSet{
		ids:    make(map[string]struct{}),
		coords: make(map[string]struct{}),
	}
}

func (d *dedupSet) add(spot domain.SmokingSpot) {
	if _, dup := d.ids[spot.ID]; dup {
		metrics.DuplicatesDiscarded.WithLabelValues("id").Inc()
		return
	}
	key := geospatial.CoordinateKey(spot.Lat, spot.Lng)
	if _, dup := d.coords[key]; dup {
		metrics.DuplicatesDiscarded.WithLabelValues("coordinate").Inc()
		return
	}
	d.ids[spot.ID] = struct{}{}
	d.coords[key] = struct{}{}
	d.spots = append(d.spots, spot)
}

// Aggregate runs the full pipeline: static provider sequentially, then all
// open-data providers concurrently. Provider failures are isolated; the run
// fails only when every source failed and nothing was collected.
func (s *AggregatorService) Aggregate(ctx context.Context) ([]domain.SmokingSpot, error) {
	set := newDedupSet()
	failures := 0
	total := 0

	if s.static != nil {
		total++
		spots, err := s.fetchOne(ctx, s.static)
		if err != nil {
			failures++
		}
		for _, spot := range spots {
			set.add(spot)
		}
	}

	// fan out; results land in a fixed slot per provider so merge order is
	// deterministic regardless of completion order
	results := make([][]domain.SmokingSpot, len(s.providers))
	errs := make([]error, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p ports.SpotProvider) {
			defer wg.Done()
			results[i], errs[i] = s.fetchOne(ctx, p)
		}(i, p)
	}
	wg.Wait()

	for i := range s.providers {
		total++
		if errs[i] != nil {
			failures++
			continue
		}
		for _, spot := range results[i] {
			set.add(spot)
		}
	}

	if len(set.spots) == 0 && failures == total && total > 0 {
		return nil, ErrAllSourcesFailed
	}

	metrics.SpotsAggregated.Set(float64(len(set.spots)))
	slog.Info("aggregation complete",
		slog.Int("spots", len(set.spots)),
		slog.Int("sources", total),
		slog.Int("failed_sources", failures))

	return set.spots, nil
}

// fetchOne wraps a provider call with logging and instrumentation so one
// misbehaving source never voids the rest of the run.
func (s *AggregatorService) fetchOne(ctx context.Context, p ports.SpotProvider) ([]domain.SmokingSpot, error) {
	start := time.Now()
	spots, err := p.Fetch(ctx)
	metrics.ProviderFetchDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProviderFetchErrors.WithLabelValues(p.Name()).Inc()
		slog.Warn("provider fetch failed",
			slog.String("provider", p.Name()),
			slog.String("error", err.Error()))
		return nil, err
	}

	metrics.ProviderRecords.WithLabelValues(p.Name()).Add(float64(len(spots)))
	slog.Debug("provider fetch complete",
		slog.String("provider", p.Name()),
		slog.Int("records", len(spots)))
	return spots, nil
}
