package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/smokemap/smokemap/internal/adapters/http"
	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// ---- Mocks ----

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type mockAggregator struct {
	spots []domain.SmokingSpot
	err   error
}

func (m *mockAggregator) Aggregate(ctx context.Context) ([]domain.SmokingSpot, error) {
	return m.spots, m.err
}

type mockSubmissionRepo struct {
	createFn       func(ctx context.Context, sub *domain.Submission) error
	getByIDFn      func(ctx context.Context, id string) (*domain.Submission, error)
	listByStatusFn func(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error)
	updateStatusFn func(ctx context.Context, id string, status domain.SubmissionStatus) error
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	if m.createFn != nil {
		return m.createFn(ctx, sub)
	}
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockSubmissionRepo) ListByStatus(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

type mockSigner struct {
	signFn func(ctx context.Context, contentType string) (*ports.UploadTarget, error)
}

func (m *mockSigner) SignUpload(ctx context.Context, contentType string) (*ports.UploadTarget, error) {
	return m.signFn(ctx, contentType)
}

// ---- Test helpers ----

func testSpots() []domain.SmokingSpot {
	return []domain.SmokingSpot{
		{
			ID: "shibuya_1", Name: "渋谷駅 喫煙所",
			NameLocalized: &domain.LocalizedText{
				Original: "渋谷駅 喫煙所", Ko: "시부야역 흡연구역", En: "Shibuya Station Smoking Area", OriginalLang: domain.LangJA,
			},
			Lat: 35.658, Lng: 139.7016,
			Type: domain.TypeAllowed, Source: domain.SourceStatic,
			Country: "JP", Region: "Tokyo", Photos: []string{"https://img.example/1.jpg"},
		},
		{
			ID: "seoul_1", Name: "서울시청 흡연부스",
			Lat: 37.5665, Lng: 126.978,
			Type: domain.TypeForbidden, Source: domain.SourceAPI,
			Country: "KR", Region: "서울특별시", District: "중구",
		},
		{
			ID: "songpa_1", Name: "송파 근린공원",
			Lat: 37.5145, Lng: 127.1059,
			Type: domain.TypeAllowed, Source: domain.SourceAPI,
			Country: "KR", Region: "서울특별시", District: "송파구",
		},
	}
}

func loaderWith(t *testing.T, spots []domain.SmokingSpot) *usecases.LoaderService {
	t.Helper()
	cache := usecases.NewCacheManager(newMemStore(), 24*time.Hour, 10000)
	loader := usecases.NewLoaderService(&mockAggregator{spots: spots}, cache, nil, usecases.LoaderOptions{})
	if err := loader.Load(context.Background()); err != nil {
		t.Fatalf("seed loader: %v", err)
	}
	return loader
}

func makeDeps(t *testing.T, opts ...func(*handler.Dependencies)) *handler.Dependencies {
	t.Helper()
	loader := loaderWith(t, testSpots())
	d := &handler.Dependencies{
		Loader:      loader,
		Spots:       usecases.NewSpotService(loader),
		Submissions: usecases.NewSubmissionService(&mockSubmissionRepo{}, nil),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

// ---- Spot list handler tests ----

func TestListSpots_Success(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.SmokingSpot `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 3 {
		t.Errorf("expected 3 spots, got %d", len(result.Data))
	}
}

func TestListSpots_FilterByCountryAndType(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots?country=KR&type=allowed", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.SmokingSpot `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 1 || result.Data[0].ID != "songpa_1" {
		t.Errorf("expected only songpa_1, got %+v", result.Data)
	}
}

func TestListSpots_InvalidType(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots?type=bogus", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request error, got %s", apiErr.Code)
	}
}

func TestListSpots_Pagination(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots?offset=1&limit=1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.SmokingSpot `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 1 {
		t.Errorf("expected 1 spot in page, got %d", len(result.Data))
	}
	if result.Pagination.Offset != 1 {
		t.Errorf("expected offset 1, got %d", result.Pagination.Offset)
	}
}

func TestListSpots_LinkHeader(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots?offset=0&limit=1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	link := resp.Header.Get("Link")
	if link == "" {
		t.Fatal("expected Link header, got empty")
	}
	if !strings.Contains(link, `rel="next"`) {
		t.Errorf("expected next link, got %s", link)
	}
	if !strings.Contains(link, `rel="first"`) {
		t.Errorf("expected first link, got %s", link)
	}
	if !strings.Contains(link, `rel="last"`) {
		t.Errorf("expected last link, got %s", link)
	}
}

// ---- Nearby handler tests ----

func TestNearbySpots_Success(t *testing.T) {
	app := setupApp(makeDeps(t))

	// Seoul City Hall; only seoul_1 is within 5km
	req := httptest.NewRequest("GET", "/v1/spots/nearby?lat=37.5665&lng=126.978&radius=5000", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var spots []domain.SmokingSpot
	json.NewDecoder(resp.Body).Decode(&spots)
	if len(spots) != 1 || spots[0].ID != "seoul_1" {
		t.Errorf("expected seoul_1 only, got %+v", spots)
	}
	if spots[0].Distance == nil {
		t.Error("expected distance to be populated")
	}
}

func TestNearbySpots_MissingParams(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/nearby", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Status int    `json:"status"`
		Code   string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request error, got %s", apiErr.Code)
	}
}

func TestNearbySpots_BadRadius(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/nearby?lat=37.56&lng=126.97&radius=50000", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestNearbySpots_CacheControlHeader(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/nearby?lat=37.56&lng=126.97", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cc := resp.Header.Get("Cache-Control")
	if cc != "public, max-age=300" {
		t.Errorf("expected Cache-Control header, got %q", cc)
	}
}

// ---- Search handler tests ----

func TestSearchSpots_MatchesLocalizedName(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/search?q=shibuya", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var spots []domain.SmokingSpot
	json.NewDecoder(resp.Body).Decode(&spots)
	if len(spots) != 1 || spots[0].ID != "shibuya_1" {
		t.Errorf("expected shibuya_1, got %+v", spots)
	}
}

func TestSearchSpots_MissingQuery(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/search", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Single spot tests ----

func TestGetSpot_Success(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/seoul_1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var spot domain.SmokingSpot
	json.NewDecoder(resp.Body).Decode(&spot)
	if spot.Name != "서울시청 흡연부스" {
		t.Errorf("unexpected spot name: %s", spot.Name)
	}
}

func TestGetSpot_NotFound(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/spots/nonexistent-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Statistics & status ----

func TestStatistics(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/statistics", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats domain.Statistics
	json.NewDecoder(resp.Body).Decode(&stats)
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.ByCountry["KR"] != 2 {
		t.Errorf("expected 2 KR spots, got %d", stats.ByCountry["KR"])
	}
}

func TestStatus(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/status", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		State domain.LoadState `json:"state"`
		Total int              `json:"total"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.State.Phase != domain.PhaseReady {
		t.Errorf("expected ready phase, got %s", result.State.Phase)
	}
	if result.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Total)
	}
}

// ---- Submission tests ----

func TestSubmitSpot_Created(t *testing.T) {
	var created *domain.Submission
	app := setupApp(makeDeps(t, func(d *handler.Dependencies) {
		d.Submissions = usecases.NewSubmissionService(&mockSubmissionRepo{
			createFn: func(ctx context.Context, sub *domain.Submission) error {
				created = sub
				return nil
			},
		}, nil)
	}))

	body := strings.NewReader(`{"name":"회사 뒤 흡연구역","lat":37.5,"lng":127.03,"type":"user","memo":"건물 뒤편"}`)
	req := httptest.NewRequest("POST", "/v1/spots", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-42")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var result domain.SubmissionResult
	json.NewDecoder(resp.Body).Decode(&result)
	if !result.Success || result.SpotID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
	if created == nil || created.SubmitterID != "user-42" {
		t.Errorf("expected submitter recorded, got %+v", created)
	}
}

func TestSubmitSpot_ValidationError(t *testing.T) {
	app := setupApp(makeDeps(t))

	// Name too short
	body := strings.NewReader(`{"name":"x","lat":37.5,"lng":127.03,"type":"user"}`)
	req := httptest.NewRequest("POST", "/v1/spots", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSubmission_NotFound(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/submissions/missing-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListSubmissions(t *testing.T) {
	app := setupApp(makeDeps(t, func(d *handler.Dependencies) {
		d.Submissions = usecases.NewSubmissionService(&mockSubmissionRepo{
			listByStatusFn: func(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
				if status != domain.SubmissionPending {
					t.Errorf("expected pending filter, got %s", status)
				}
				return []domain.Submission{{ID: "sub-1"}, {ID: "sub-2"}}, nil
			},
		}, nil)
	}))

	req := httptest.NewRequest("GET", "/v1/submissions", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Count int `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Count != 2 {
		t.Errorf("expected count 2, got %d", result.Count)
	}
}

func TestReviewSubmission(t *testing.T) {
	var gotStatus domain.SubmissionStatus
	app := setupApp(makeDeps(t, func(d *handler.Dependencies) {
		d.Submissions = usecases.NewSubmissionService(&mockSubmissionRepo{
			updateStatusFn: func(ctx context.Context, id string, status domain.SubmissionStatus) error {
				gotStatus = status
				return nil
			},
		}, nil)
	}))

	body := strings.NewReader(`{"status":"approved"}`)
	req := httptest.NewRequest("POST", "/v1/submissions/sub-1/review", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotStatus != domain.SubmissionApproved {
		t.Errorf("expected approved, got %s", gotStatus)
	}
}

// ---- Upload signing tests ----

func TestSignUpload_Created(t *testing.T) {
	app := setupApp(makeDeps(t, func(d *handler.Dependencies) {
		d.Uploads = &mockSigner{
			signFn: func(ctx context.Context, contentType string) (*ports.UploadTarget, error) {
				return &ports.UploadTarget{
					UploadURL: "https://bucket.s3.ap-northeast-2.amazonaws.com/photos/abc.jpg?sig=x",
					Key:       "photos/abc.jpg",
					PublicURL: "https://bucket.s3.ap-northeast-2.amazonaws.com/photos/abc.jpg",
					ExpiresIn: 900,
				}, nil
			},
		}
	}))

	body := strings.NewReader(`{"content_type":"image/jpeg"}`)
	req := httptest.NewRequest("POST", "/v1/uploads", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var target ports.UploadTarget
	json.NewDecoder(resp.Body).Decode(&target)
	if target.Key != "photos/abc.jpg" {
		t.Errorf("unexpected key: %s", target.Key)
	}
}

func TestSignUpload_UnsupportedType(t *testing.T) {
	app := setupApp(makeDeps(t, func(d *handler.Dependencies) {
		d.Uploads = &mockSigner{
			signFn: func(ctx context.Context, contentType string) (*ports.UploadTarget, error) {
				return nil, fmt.Errorf("%w: %s", ports.ErrUnsupportedMedia, contentType)
			},
		}
	}))

	body := strings.NewReader(`{"content_type":"application/zip"}`)
	req := httptest.NewRequest("POST", "/v1/uploads", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 415 {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}
}

func TestSignUpload_NotConfigured(t *testing.T) {
	app := setupApp(makeDeps(t))

	body := strings.NewReader(`{"content_type":"image/jpeg"}`)
	req := httptest.NewRequest("POST", "/v1/uploads", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Health handler tests ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", result["status"])
	}
}

func TestReady_DatasetOnly(t *testing.T) {
	// DB, NATS, Store are nil → "not configured" but still ready once spots
	// are loaded
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// ---- Deprecated alias ----

func TestSmokingAreasAlias_Deprecated(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/smoking-areas", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Deprecation") != "true" {
		t.Error("expected Deprecation header")
	}
	if resp.Header.Get("Sunset") == "" {
		t.Error("expected Sunset header")
	}
}

// ---- X-API-Version header ----

func TestAPIVersionHeader(t *testing.T) {
	app := setupApp(makeDeps(t))

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	v := resp.Header.Get("X-API-Version")
	if v != "1.0.0" {
		t.Errorf("expected X-API-Version 1.0.0, got %q", v)
	}
}

// ---- GraphQL ----

func TestGraphQL_SpotsQuery(t *testing.T) {
	app := setupApp(makeDeps(t))

	body := strings.NewReader(`{"query":"{ spots(country: \"KR\") { id name } }"}`)
	req := httptest.NewRequest("POST", "/graphql", body)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Spots []struct {
				ID string `json:"id"`
			} `json:"spots"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected graphql errors: %v", result.Errors)
	}
	if len(result.Data.Spots) != 2 {
		t.Errorf("expected 2 KR spots, got %d", len(result.Data.Spots))
	}
}

// TestAccessLogMiddleware verifies structured access logging is emitted.
func TestAccessLogMiddleware(t *testing.T) {
	app := fiber.New()

	// Register middleware
	app.Use(handler.AccessLogMiddleware())

	// Simple test route
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	// Make request
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "test-req-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	// Verify response body
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("expected response body to contain 'ok', got %s", string(body))
	}
}
