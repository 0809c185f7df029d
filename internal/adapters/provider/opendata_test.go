package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/pkg/localize"
)

func testSource(baseURL string, pageSize, maxPages int) SourceConfig {
	return SourceConfig{
		Slug:     "test_source",
		Name:     "test",
		Region:   "서울특별시",
		District: "테스트구",
		Type:     domain.TypeAllowed,
		PageSize: pageSize,
		MaxPages: maxPages,
		PageURL: func(key string, page, size int) string {
			return fmt.Sprintf("%s?serviceKey=%s&page=%d&size=%d", baseURL, key, page, size)
		},
		ParsePage: func(body []byte) ([]Item, error) {
			var items []Item
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, err
			}
			return items, nil
		},
	}
}

func TestOpenDataProviderStopsOnShortPage(t *testing.T) {
	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			fmt.Fprint(w, `[{"Name":"a","Lat":35.1,"Lng":127.1},{"Name":"b","Lat":35.2,"Lng":127.2}]`)
		default:
			// short page terminates pagination
			fmt.Fprint(w, `[{"Name":"c","Lat":35.3,"Lng":127.3}]`)
		}
	}))
	defer srv.Close()

	p := NewOpenDataProvider(testSource(srv.URL, 2, 10), "key", srv.Client(), localize.DefaultEngine())
	spots, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if pagesServed != 2 {
		t.Errorf("pages served = %d, want 2", pagesServed)
	}
	if len(spots) != 3 {
		t.Fatalf("got %d spots, want 3", len(spots))
	}
	if spots[0].Region != "서울특별시" || spots[0].District != "테스트구" {
		t.Errorf("metadata not applied: %+v", spots[0])
	}
	if spots[0].Source != domain.SourceAPI || spots[0].Country != "KR" {
		t.Errorf("provenance wrong: %+v", spots[0])
	}
}

func TestOpenDataProviderHonorsPageCeiling(t *testing.T) {
	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		// always a full page: upstream signals "more data" forever
		fmt.Fprint(w, `[{"Name":"a","Lat":35.1,"Lng":127.1},{"Name":"b","Lat":35.2,"Lng":127.2}]`)
	}))
	defer srv.Close()

	p := NewOpenDataProvider(testSource(srv.URL, 2, 3), "key", srv.Client(), localize.DefaultEngine())
	if _, err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if pagesServed != 3 {
		t.Errorf("pages served = %d, want ceiling of 3", pagesServed)
	}
}

func TestOpenDataProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenDataProvider(testSource(srv.URL, 2, 3), "key", srv.Client(), localize.DefaultEngine())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestOpenDataProviderSkipsInvalidCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"Name":"good","Lat":35.1,"Lng":127.1},{"Name":"bad","Lat":0,"Lng":0}]`)
	}))
	defer srv.Close()

	p := NewOpenDataProvider(testSource(srv.URL, 10, 1), "key", srv.Client(), localize.DefaultEngine())
	spots, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(spots) != 1 || spots[0].Name != "good" {
		t.Errorf("spots = %+v, want just the valid record", spots)
	}
}

func TestOpenDataProviderGeneratedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"Name":"a","Lat":35.1,"Lng":127.1},{"Name":"b","Lat":35.2,"Lng":127.2}]`)
	}))
	defer srv.Close()

	p := NewOpenDataProvider(testSource(srv.URL, 10, 1), "key", srv.Client(), localize.DefaultEngine())
	spots, _ := p.Fetch(context.Background())
	if spots[0].ID != "test_source_1_0" || spots[1].ID != "test_source_1_1" {
		t.Errorf("generated ids = %q, %q", spots[0].ID, spots[1].ID)
	}
}

func TestParseNationwideEmptyItems(t *testing.T) {
	// the registry returns "" instead of an array when a page is empty
	items, err := parseNationwide([]byte(`{"response":{"body":{"items":""}}}`))
	if err != nil {
		t.Fatalf("parseNationwide: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestParseNationwideFieldAliases(t *testing.T) {
	body := []byte(`{"response":{"body":{"items":[
		{"nm":"시청 앞","la":"37.56","lo":"126.97","lnmadr":"서울 중구","ctprvnNm":"서울특별시","signguNm":"중구","prhsmkZoneAr":"120"}
	]}}}`)

	items, err := parseNationwide(body)
	if err != nil {
		t.Fatalf("parseNationwide: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	it := items[0]
	if it.Name != "시청 앞" || it.Lat != 37.56 || it.Lng != 126.97 {
		t.Errorf("item = %+v", it)
	}
	if it.Region != "서울특별시" || it.District != "중구" {
		t.Errorf("region metadata = %+v", it)
	}
	if it.Memo != "면적: 120㎡" {
		t.Errorf("memo = %q", it.Memo)
	}
}

func TestParseSejongSmokingNestedItems(t *testing.T) {
	body := []byte(`{"response":{"body":{"items":{"item":[
		{"smokingAreaNm":"정부청사 흡연구역","smokingAreaNo":"42","latitude":"36.50","longitude":"127.25","roadNmAddr":"세종로 1"}
	]}}}}`)

	items, err := parseSejongSmoking(body)
	if err != nil {
		t.Fatalf("parseSejongSmoking: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].ID != "sejong_smoking_42" {
		t.Errorf("id = %q", items[0].ID)
	}
	if items[0].Address != "세종로 1" {
		t.Errorf("address = %q", items[0].Address)
	}
}

func TestDefaultSourcesDeclarationOrder(t *testing.T) {
	sources := DefaultSources()
	if len(sources) != 10 {
		t.Fatalf("got %d sources, want 10", len(sources))
	}
	if sources[0].Slug != "nationwide_nosmoking" || sources[1].Slug != "sejong_nosmoking" || sources[2].Slug != "sejong_smoking" {
		t.Errorf("registry order wrong: %s, %s, %s", sources[0].Slug, sources[1].Slug, sources[2].Slug)
	}
	for _, s := range sources {
		if s.MaxPages < 1 || s.PageSize < 1 {
			t.Errorf("%s: pagination bounds not set", s.Slug)
		}
		if s.PageURL == nil || s.ParsePage == nil {
			t.Errorf("%s: incomplete config", s.Slug)
		}
	}
}
