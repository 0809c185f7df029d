package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// DefaultSources returns the Korean open-data endpoints the aggregator
// queries: the nationwide no-smoking-zone registry, the two Sejong City
// services, and the per-district odcloud datasets. Declaration order is the
// aggregation order.
func DefaultSources() []SourceConfig {
	sources := []SourceConfig{
		{
			Slug:     "nationwide_nosmoking",
			Name:     "전국 금연구역 표준데이터",
			Type:     domain.TypeForbidden,
			PageSize: 1000,
			MaxPages: 20,
			PageURL: func(key string, page, size int) string {
				return fmt.Sprintf(
					"http://api.data.go.kr/openapi/tn_pubr_public_prhsmk_zn_api?serviceKey=%s&pageNo=%d&numOfRows=%d&type=json",
					key, page, size)
			},
			ParsePage: parseNationwide,
		},
		{
			Slug:     "sejong_nosmoking",
			Name:     "세종시 금연구역",
			Region:   "세종특별자치시",
			Type:     domain.TypeForbidden,
			PageSize: 100,
			MaxPages: 10,
			PageURL: func(key string, page, size int) string {
				return fmt.Sprintf(
					"http://apis.data.go.kr/5690000/sjNoSomking/sj_00000190?serviceKey=%s&pageIndex=%d&pageUnit=%d&dataTy=json",
					key, page, size)
			},
			ParsePage: parseSejongNoSmoking,
		},
		{
			Slug:     "sejong_smoking",
			Name:     "세종시 흡연구역",
			Region:   "세종특별자치시",
			Type:     domain.TypeAllowed,
			PageSize: 1000,
			MaxPages: 1,
			PageURL: func(key string, page, size int) string {
				return fmt.Sprintf(
					"https://apis.data.go.kr/3610000/SmokingAreaInfoService/getSmokingAreaList?serviceKey=%s&numOfRows=%d&pageNo=%d&type=json",
					key, size, page)
			},
			ParsePage: parseSejongSmoking,
		},
	}

	for _, d := range districtSources() {
		sources = append(sources, d)
	}
	return sources
}

// districtDataset describes one odcloud per-district dataset. These are
// small single-page exports with Korean column names that differ per
// district office.
type districtDataset struct {
	id       string
	region   string
	district string
	fallback string
	parse    func(item map[string]any) Item
}

func districtSources() []SourceConfig {
	datasets := []districtDataset{
		{
			id: "15090343", region: "서울특별시", district: "송파구", fallback: "송파구 흡연구역",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "건물명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "도로명주소"),
				}
			},
		},
		{
			id: "15080296", region: "서울특별시", district: "중구", fallback: "중구 흡연구역",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "설치위치"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "설치도로명주소"),
					Memo:    prefixed("규모: ", strField(m, "규모")),
				}
			},
		},
		{
			id: "15097874", region: "서울특별시", district: "광진구", fallback: "광진구 흡연구역",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "흡연구역명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "소재지", "도로명주소"),
					Memo:    suffixed("면적: ", strField(m, "면적"), "㎡"),
				}
			},
		},
		{
			id: "15068847", region: "서울특별시", district: "마포구", fallback: "마포구 흡연시설",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "상호명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "소재지도로명주소"),
					Memo:    strField(m, "흡연시설형태"),
				}
			},
		},
		{
			id: "15060926", region: "경기도", district: "안양시", fallback: "안양시 흡연구역",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "흡연구역명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "소재지도로명주소", "소재지지번주소"),
				}
			},
		},
		{
			id: "15029124", region: "부산광역시", district: "연제구", fallback: "연제구 흡연실",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "시설명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "주소", "도로명주소"),
				}
			},
		},
		{
			id: "15029136", region: "인천광역시", district: "서구", fallback: "서구 흡연구역",
			parse: func(m map[string]any) Item {
				return Item{
					Name:    strField(m, "흡연구역명", "시설명"),
					Lat:     floatField(m, "위도"),
					Lng:     floatField(m, "경도"),
					Address: strField(m, "도로명주소", "주소"),
				}
			},
		},
	}

	configs := make([]SourceConfig, 0, len(datasets))
	for _, d := range datasets {
		d := d
		configs = append(configs, SourceConfig{
			Slug:     "kr_" + d.district,
			Name:     d.region + " " + d.fallback,
			Region:   d.region,
			District: d.district,
			Type:     domain.TypeAllowed,
			PageSize: 1000,
			MaxPages: 1,
			PageURL: func(key string, page, size int) string {
				return fmt.Sprintf(
					"https://api.odcloud.kr/api/%s/v1/uddi:data?page=%d&perPage=%d&serviceKey=%s",
					d.id, page, size, key)
			},
			ParsePage: func(body []byte) ([]Item, error) {
				var payload struct {
					Data []map[string]any `json:"data"`
				}
				if err := json.Unmarshal(body, &payload); err != nil {
					return nil, fmt.Errorf("parse odcloud payload: %w", err)
				}
				items := make([]Item, 0, len(payload.Data))
				for _, m := range payload.Data {
					item := d.parse(m)
					if item.Name == "" {
						item.Name = d.fallback
					}
					items = append(items, item)
				}
				return items, nil
			},
		})
	}
	return configs
}

func parseNationwide(body []byte) ([]Item, error) {
	var payload struct {
		Response struct {
			Body struct {
				Items json.RawMessage `json:"items"`
			} `json:"body"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse nationwide payload: %w", err)
	}

	// the registry returns "" instead of [] for empty result pages
	var records []map[string]any
	if len(payload.Response.Body.Items) > 0 {
		if err := json.Unmarshal(payload.Response.Body.Items, &records); err != nil {
			return nil, nil
		}
	}

	items := make([]Item, 0, len(records))
	for _, m := range records {
		name := strField(m, "prhsmkZoneNm", "nm")
		if name == "" {
			name = "금연구역"
		}
		items = append(items, Item{
			Name:     name,
			Lat:      floatField(m, "latitude", "la"),
			Lng:      floatField(m, "longitude", "lo"),
			Address:  strField(m, "rdnmadr", "lnmadr"),
			Memo:     suffixed("면적: ", strField(m, "prhsmkZoneAr"), "㎡"),
			Region:   strField(m, "ctprvnNm"),
			District: strField(m, "signguNm"),
		})
	}
	return items, nil
}

func parseSejongNoSmoking(body []byte) ([]Item, error) {
	var payload struct {
		Body  []map[string]any `json:"body"`
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse sejong payload: %w", err)
	}
	records := payload.Body
	if records == nil {
		records = payload.Items
	}

	items := make([]Item, 0, len(records))
	for _, m := range records {
		name := strField(m, "nm")
		if name == "" {
			name = "세종시 금연구역"
		}
		items = append(items, Item{
			Name:    name,
			Lat:     floatField(m, "la"),
			Lng:     floatField(m, "lo"),
			Address: strField(m, "scope"),
			Memo:    prefixed("과태료: ", strField(m, "vltnFfnlg")),
		})
	}
	return items, nil
}

func parseSejongSmoking(body []byte) ([]Item, error) {
	var payload struct {
		Response struct {
			Body struct {
				Items struct {
					Item []map[string]any `json:"item"`
				} `json:"items"`
			} `json:"body"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse sejong smoking payload: %w", err)
	}

	items := make([]Item, 0, len(payload.Response.Body.Items.Item))
	for i, m := range payload.Response.Body.Items.Item {
		name := strField(m, "smokingAreaNm")
		if name == "" {
			name = "세종시 흡연구역"
		}
		id := strField(m, "smokingAreaNo")
		if id == "" {
			id = strconv.Itoa(i)
		}
		items = append(items, Item{
			ID:      "sejong_smoking_" + id,
			Name:    name,
			Lat:     floatField(m, "latitude"),
			Lng:     floatField(m, "longitude"),
			Address: strField(m, "roadNmAddr", "lotnoAddr"),
		})
	}
	return items, nil
}

func prefixed(prefix, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return prefix + s
}

func suffixed(prefix, s, suffix string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return prefix + s + suffix
}
