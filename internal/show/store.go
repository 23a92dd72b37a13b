package show

import (
	"context"
	"log/slog"
	"sync"

	"hamrotrack/internal/gateway"
)

// Store mirrors the show catalog. The catalog is read-only from the client;
// there is no create or delete path.
type Store struct {
	gw gateway.Client

	mu      sync.Mutex
	items   []Show
	loading bool
}

func NewStore(gw gateway.Client) *Store {
	return &Store{gw: gw}
}

// Items returns a snapshot of the cached shows in title order.
func (s *Store) Items() []Show {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Show, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Fetch replaces the cache with the remote catalog. The catalog is shared, so
// unlike the owned collections no identity is required; a rejected query
// still degrades to an empty cache with a log line.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.gw.Select(ctx, Collection, nil,
		[]gateway.Order{{Column: "title"}},
	)

	var rows []Show
	if err == nil {
		rows, err = gateway.DecodeRows[Show](raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("fetching shows", "error", err)
		s.items = nil

		return nil
	}

	s.items = rows

	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
