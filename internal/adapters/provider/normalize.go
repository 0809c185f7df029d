// Package provider contains the per-source adapters that fetch raw smoking
// spot records and normalize them into the canonical entity shape.
package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/pkg/geospatial"
	"github.com/smokemap/smokemap/internal/pkg/localize"
)

// Normalizer converts heterogeneous raw records into canonical spots,
// attaching localized text bundles as it goes.
type Normalizer struct {
	loc *localize.Engine
}

func NewNormalizer(loc *localize.Engine) *Normalizer {
	return &Normalizer{loc: loc}
}

// Normalize maps one raw record to a canonical spot. Field names are probed
// across the casings and aliases the upstream exports use. Returns nil when
// either coordinate is missing, zero, or not a finite number.
func (n *Normalizer) Normalize(raw map[string]any, source domain.Source) *domain.SmokingSpot {
	lat := floatField(raw, "lat", "Lat", "latitude")
	lng := floatField(raw, "lng", "Lng", "longitude")
	if !geospatial.ValidCoordinates(lat, lng) {
		return nil
	}

	id := strField(raw, "coordinate_id", "Id", "id")
	if id == "" {
		// source-qualified fallback derived from the rounded coordinates so
		// repeated runs assign the same id to the same record
		id = fmt.Sprintf("%s_%s", source, geospatial.CoordinateKey(lat, lng))
	}

	name := strField(raw, "name", "Name")
	if name == "" {
		name = "이름 없음"
	}
	address := strField(raw, "address", "Address")
	memo := strField(raw, "memo", "Memo")

	spotType := domain.SpotType(strField(raw, "type", "Type"))
	switch spotType {
	case domain.TypeAllowed, domain.TypeForbidden, domain.TypeUser:
	default:
		spotType = domain.TypeAllowed
	}

	country := strField(raw, "country", "Country")
	if country == "" {
		country = "JP"
	}

	return &domain.SmokingSpot{
		ID:               id,
		Name:             name,
		NameLocalized:    n.loc.Localize(name),
		Lat:              lat,
		Lng:              lng,
		Type:             spotType,
		Address:          address,
		AddressLocalized: n.loc.Localize(address),
		Memo:             memo,
		MemoLocalized:    n.loc.Localize(memo),
		BusinessHour:     strField(raw, "business_hour", "Business Hour"),
		Holiday:          strField(raw, "holiday", "Holiday"),
		WebPage:          strField(raw, "web_page", "Web Page"),
		HasRoof:          boolField(raw, "hasRoof", "roof", "Roof"),
		HasChair:         boolField(raw, "hasChair", "chair", "Chair"),
		IsEnclosed:       boolField(raw, "isEnclosed", "enclosure", "Enclosure"),
		Is24Hours:        boolField(raw, "is24Hours", "is_24_hours", "Is 24 Hours"),
		Photos:           photosField(raw, "photos", "site_photos", "Site Photos"),
		Source:           source,
		Country:          country,
		Region:           strField(raw, "region", "Region"),
		District:         strField(raw, "district", "District"),
		CreatedAt:        strField(raw, "createdAt", "created_time", "Created Time"),
		UpdatedAt:        strField(raw, "updatedAt", "updated_time", "Updated Time"),
	}
}

// strField returns the first present non-empty string among the aliases.
func strField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// floatField parses the first present alias as a float. JSON numbers arrive
// as float64; CSV-derived exports carry numerics as strings.
func floatField(raw map[string]any, keys ...string) float64 {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				return 0
			}
			return f
		}
	}
	return 0
}

// boolField treats JSON true and the string sentinel "1" as set.
func boolField(raw map[string]any, keys ...string) bool {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case string:
			return t == "1"
		}
	}
	return false
}

// photosField accepts either a ready-made list or a " | "-joined string,
// dropping blank entries while keeping order.
func photosField(raw map[string]any, keys ...string) []string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case []any:
			var out []string
			for _, p := range t {
				if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			if t == "" {
				return nil
			}
			var out []string
			for _, p := range strings.Split(t, " | ") {
				if strings.TrimSpace(p) != "" {
					out = append(out, p)
				}
			}
			return out
		}
	}
	return nil
}
