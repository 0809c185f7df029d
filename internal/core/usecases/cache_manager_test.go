package usecases_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// --- In-memory KVStore ---

type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func someSpots(n int) []domain.SmokingSpot {
	spots := make([]domain.SmokingSpot, n)
	for i := range spots {
		spots[i] = domain.SmokingSpot{
			ID:  string(rune('a' + i)),
			Lat: 35.0 + float64(i)*0.001,
			Lng: 139.0 + float64(i)*0.001,
		}
	}
	return spots
}

// --- Tests ---

func TestCacheManager_RoundTrip(t *testing.T) {
	store := newMemStore()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 10000)

	saved := someSpots(3)
	cm.Save(context.Background(), saved)

	got, savedAt, ok := cm.Load(context.Background())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 spots, got %d", len(got))
	}
	if got[0].ID != saved[0].ID {
		t.Errorf("round trip changed data: %+v", got[0])
	}
	if time.Since(savedAt) > time.Minute {
		t.Errorf("timestamp not current: %v", savedAt)
	}
}

func TestCacheManager_MissWhenEmpty(t *testing.T) {
	cm := usecases.NewCacheManager(newMemStore(), 24*time.Hour, 10000)
	if _, _, ok := cm.Load(context.Background()); ok {
		t.Error("expected miss on empty store")
	}
}

func TestCacheManager_TTLExpiryPurges(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 10000).
		WithClock(func() time.Time { return now })

	cm.Save(context.Background(), someSpots(2))

	// advance past the TTL
	now = now.Add(25 * time.Hour)

	if _, _, ok := cm.Load(context.Background()); ok {
		t.Error("expected miss after TTL expiry")
	}
	if store.len() != 0 {
		t.Errorf("expired entries must be purged, %d keys remain", store.len())
	}
}

func TestCacheManager_SaveCapsHead(t *testing.T) {
	store := newMemStore()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 5)

	cm.Save(context.Background(), someSpots(8))

	got, _, ok := cm.Load(context.Background())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 5 {
		t.Fatalf("expected capped head of 5, got %d", len(got))
	}
	if got[0].ID != "a" {
		t.Errorf("cap must keep the head, got first id %q", got[0].ID)
	}
}

func TestCacheManager_SaveErrorPurgesAndStaysQuiet(t *testing.T) {
	store := newMemStore()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 10000)

	cm.Save(context.Background(), someSpots(2))
	store.setErr = errors.New("quota exceeded")
	cm.Save(context.Background(), someSpots(3))

	if store.len() != 0 {
		t.Errorf("failed save must purge prior entries, %d keys remain", store.len())
	}
	if _, _, ok := cm.Load(context.Background()); ok {
		t.Error("expected miss after purge")
	}
}

func TestCacheManager_PartialEntryReadsAsAbsent(t *testing.T) {
	store := newMemStore()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 10000)

	// fresh timestamp present but data missing
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	_ = store.Set(context.Background(), "smokemap:spots:ts", []byte(ts))

	if _, _, ok := cm.Load(context.Background()); ok {
		t.Error("partial entry must read as absent")
	}
	if store.len() != 0 {
		t.Error("partial entry must be purged")
	}
}

func TestCacheManager_LoadStaleIgnoresTTL(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	cm := usecases.NewCacheManager(store, 24*time.Hour, 10000).
		WithClock(func() time.Time { return now })

	cm.Save(context.Background(), someSpots(2))
	now = now.Add(48 * time.Hour)

	got, _, ok := cm.LoadStale(context.Background())
	if !ok {
		t.Fatal("LoadStale should return expired data")
	}
	if len(got) != 2 {
		t.Errorf("expected 2 spots, got %d", len(got))
	}
}
