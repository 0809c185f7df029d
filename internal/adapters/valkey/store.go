package valkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/smokemap/smokemap/internal/core/ports"
)

// Store implements ports.KVStore using Valkey (Redis-compatible). Values are
// stored without a server-side TTL: expiry is governed by the cache
// manager's timestamp key, and stale-fallback reads need expired data to
// still be present.
type Store struct {
	client valkey.Client
}

// New creates a new Valkey store.
func New(addr string) (*Store, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Store{client: client}, nil
}

// Get retrieves a value by key. A missing key reads as ports.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := cmd.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return cmd.AsBytes()
}

// Set stores a value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.Do(ctx, s.client.B().Set().Key(key).Value(string(value)).Build())
	return cmd.Error()
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(key).Build())
	return cmd.Error()
}

// Close releases the client.
func (s *Store) Close() {
	s.client.Close()
}
