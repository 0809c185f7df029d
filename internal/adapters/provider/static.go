package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// StaticProvider reads the bundled spot dataset from disk. The file is
// either a plain array of raw records or the newer versioned envelope
// `{"version": ..., "spots": [...]}`; both are accepted.
type StaticProvider struct {
	path string
	norm *Normalizer
}

func NewStaticProvider(path string, norm *Normalizer) *StaticProvider {
	return &StaticProvider{path: path, norm: norm}
}

func (p *StaticProvider) Name() string { return "static" }

// Fetch loads and normalizes the bundled dataset.
func (p *StaticProvider) Fetch(_ context.Context) ([]domain.SmokingSpot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read static data: %w", err)
	}

	var envelope struct {
		Version int              `json:"version"`
		Spots   []map[string]any `json:"spots"`
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Spots != nil {
		records = envelope.Spots
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse static data: %w", err)
	}

	spots := make([]domain.SmokingSpot, 0, len(records))
	for _, raw := range records {
		if spot := p.norm.Normalize(raw, domain.SourceStatic); spot != nil {
			spots = append(spots, *spot)
		}
	}
	return spots, nil
}
