package usecases

import (
	"sort"
	"strings"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/pkg/geospatial"
)

// SpotFilter selects a subset of the aggregated collection. Zero values
// match everything.
type SpotFilter struct {
	Country   string
	Region    string
	District  string
	Type      domain.SpotType
	HasPhotos bool
}

// SpotService answers read queries over the loader's current collection.
// All operations work on in-memory snapshots; nothing blocks.
type SpotService struct {
	loader *LoaderService
}

func NewSpotService(loader *LoaderService) *SpotService {
	return &SpotService{loader: loader}
}

// Filter returns spots matching every set filter field.
func (s *SpotService) Filter(f SpotFilter) []domain.SmokingSpot {
	spots := s.loader.Spots()
	out := spots[:0:0]
	for _, spot := range spots {
		if f.Country != "" && spot.Country != f.Country {
			continue
		}
		if f.Region != "" && spot.Region != f.Region {
			continue
		}
		if f.District != "" && spot.District != f.District {
			continue
		}
		if f.Type != "" && spot.Type != f.Type {
			continue
		}
		if f.HasPhotos && len(spot.Photos) == 0 {
			continue
		}
		out = append(out, spot)
	}
	return out
}

// Nearby returns up to limit spots within radiusMeters of the point, closest
// first, with the Distance field populated. A cheap bounding-box check culls
// candidates before the haversine pass.
func (s *SpotService) Nearby(lat, lng, radiusMeters float64, limit int) []domain.SmokingSpot {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	minLat, minLng, maxLat, maxLng := geospatial.BoundingBox(lat, lng, radiusMeters)
	box := domain.Bounds{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng}

	var out []domain.SmokingSpot
	for _, spot := range s.loader.Spots() {
		if !box.Contains(spot.Lat, spot.Lng) {
			continue
		}
		d := geospatial.Haversine(lat, lng, spot.Lat, spot.Lng)
		if d > radiusMeters {
			continue
		}
		dist := d
		spot.Distance = &dist
		out = append(out, spot)
	}

	sort.Slice(out, func(i, j int) bool { return *out[i].Distance < *out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Search matches the query case-insensitively against names and addresses,
// including their localized variants.
func (s *SpotService) Search(query string, limit int) []domain.SmokingSpot {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var out []domain.SmokingSpot
	for _, spot := range s.loader.Spots() {
		if matchesQuery(&spot, query) {
			out = append(out, spot)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

func matchesQuery(spot *domain.SmokingSpot, query string) bool {
	fields := []string{spot.Name, spot.Address}
	for _, lt := range []*domain.LocalizedText{spot.NameLocalized, spot.AddressLocalized} {
		if lt != nil {
			fields = append(fields, lt.Ko, lt.En)
		}
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// GetByID finds one spot in the current collection.
func (s *SpotService) GetByID(id string) (*domain.SmokingSpot, error) {
	for _, spot := range s.loader.Spots() {
		if spot.ID == id {
			return &spot, nil
		}
	}
	return nil, ports.ErrNotFound
}

// Statistics derives summary counts over the current collection.
func (s *SpotService) Statistics() domain.Statistics {
	return s.loader.Statistics()
}

// ComputeStatistics counts spots by country, region, and type. Missing
// provenance buckets under "unknown".
func ComputeStatistics(spots []domain.SmokingSpot) domain.Statistics {
	stats := domain.Statistics{
		ByCountry: make(map[string]int),
		ByRegion:  make(map[string]int),
		ByType:    make(map[string]int),
		Total:     len(spots),
	}
	for _, spot := range spots {
		country := spot.Country
		if country == "" {
			country = "unknown"
		}
		stats.ByCountry[country]++

		region := spot.Region
		if region == "" {
			region = "unknown"
		}
		stats.ByRegion[region]++

		stats.ByType[string(spot.Type)]++
	}
	return stats
}
