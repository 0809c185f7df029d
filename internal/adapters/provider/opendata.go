package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/pkg/geospatial"
	"github.com/smokemap/smokemap/internal/pkg/localize"
)

// Item is the intermediate shape a source parser produces before canonical
// normalization. Region/District override the source defaults when set.
type Item struct {
	ID       string
	Name     string
	Lat      float64
	Lng      float64
	Address  string
	Memo     string
	Region   string
	District string
}

// SourceConfig describes one government open-data endpoint: how to build a
// page request and how to parse its response body. The response shapes vary
// wildly across providers, so parsing is absorbed entirely by ParsePage.
type SourceConfig struct {
	Slug     string
	Name     string
	Region   string
	District string
	Type     domain.SpotType

	// PageURL builds the request URL for one page (1-based).
	PageURL func(serviceKey string, page, pageSize int) string
	// ParsePage extracts items from one response body.
	ParsePage func(body []byte) ([]Item, error)

	PageSize int
	// MaxPages bounds pagination; some registries keep signalling "more
	// data" forever, so termination must not depend on the upstream.
	MaxPages int
}

// OpenDataProvider fetches one paginated open-data source and normalizes its
// records. Failures are returned to the caller, which treats them as zero
// records from this source.
type OpenDataProvider struct {
	cfg        SourceConfig
	serviceKey string
	client     *http.Client
	loc        *localize.Engine
}

func NewOpenDataProvider(cfg SourceConfig, serviceKey string, client *http.Client, loc *localize.Engine) *OpenDataProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenDataProvider{cfg: cfg, serviceKey: serviceKey, client: client, loc: loc}
}

func (p *OpenDataProvider) Name() string { return p.cfg.Slug }

// Fetch pages through the endpoint until a short page, an empty page, or the
// page ceiling.
func (p *OpenDataProvider) Fetch(ctx context.Context) ([]domain.SmokingSpot, error) {
	var spots []domain.SmokingSpot

	for page := 1; page <= p.cfg.MaxPages; page++ {
		items, err := p.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", p.cfg.Slug, page, err)
		}
		if len(items) == 0 {
			break
		}

		for i, item := range items {
			if !geospatial.ValidCoordinates(item.Lat, item.Lng) {
				continue
			}
			spots = append(spots, p.toSpot(item, page, i))
		}

		if len(items) < p.cfg.PageSize {
			break
		}
	}

	return spots, nil
}

func (p *OpenDataProvider) fetchPage(ctx context.Context, page int) ([]Item, error) {
	url := p.cfg.PageURL(p.serviceKey, page, p.cfg.PageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return p.cfg.ParsePage(body)
}

func (p *OpenDataProvider) toSpot(item Item, page, index int) domain.SmokingSpot {
	id := item.ID
	if id == "" {
		id = fmt.Sprintf("%s_%d_%d", p.cfg.Slug, page, index)
	}

	region := item.Region
	if region == "" {
		region = p.cfg.Region
	}
	district := item.District
	if district == "" {
		district = p.cfg.District
	}

	return domain.SmokingSpot{
		ID:               id,
		Name:             item.Name,
		NameLocalized:    p.loc.Localize(item.Name),
		Lat:              item.Lat,
		Lng:              item.Lng,
		Type:             p.cfg.Type,
		Address:          item.Address,
		AddressLocalized: p.loc.Localize(item.Address),
		Memo:             item.Memo,
		Source:           domain.SourceAPI,
		Country:          "KR",
		Region:           region,
		District:         district,
	}
}
