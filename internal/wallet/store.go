package wallet

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
)

// Store mirrors the remote wallet collection for the current identity.
// Fetch replaces the cache wholesale; writes are pessimistic and only touch
// the cache once the gateway confirms them. Concurrent operations race with
// last-write-wins semantics; the mutex only keeps the in-memory slice sound
// while bubbletea commands run off the update loop.
type Store struct {
	gw       gateway.Client
	notifier notify.Notifier

	mu       sync.Mutex
	items    []Wallet
	selected uuid.UUID
	loading  bool
}

func NewStore(gw gateway.Client, notifier notify.Notifier) *Store {
	return &Store{gw: gw, notifier: notifier}
}

// Items returns a snapshot of the cached wallets, most recently created
// first.
func (s *Store) Items() []Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Wallet, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Select marks the wallet with the given id as focused. Selecting an id that
// is not cached clears the focus.
func (s *Store) Select(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = uuid.Nil

	for _, w := range s.items {
		if w.ID == id {
			s.selected = id
			return
		}
	}
}

// Selected returns the focused wallet, if any. The returned record always
// reflects the latest cached state.
func (s *Store) Selected() (Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == uuid.Nil {
		return Wallet{}, false
	}

	for _, w := range s.items {
		if w.ID == s.selected {
			return w, true
		}
	}

	return Wallet{}, false
}

// Fetch replaces the cache with the remote state. A rejected query degrades
// to an empty cache with a log line; only a missing identity is reported to
// the caller.
func (s *Store) Fetch(ctx context.Context) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.gw.Select(ctx, Collection,
		[]gateway.Eq{{Column: "user_id", Value: owner}},
		[]gateway.Order{{Column: "created_at", Descending: true}},
	)

	var rows []Wallet
	if err == nil {
		rows, err = gateway.DecodeRows[Wallet](raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("fetching wallets", "error", err)
		s.items = nil

		return nil
	}

	s.items = rows

	return nil
}

// Create inserts a wallet stamped with the current identity and prepends the
// canonical record to the cache.
func (s *Store) Create(ctx context.Context, params CreateParams) error {
	if err := params.validate(); err != nil {
		s.notifier.Notify("Failed to create wallet", err.Error(), notify.Error)
		return err
	}

	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to create wallet", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	row := struct {
		Name     string          `json:"name"`
		Currency string          `json:"currency"`
		Balance  decimal.Decimal `json:"balance"`
		UserID   uuid.UUID       `json:"user_id"`
	}{
		Name:     params.Name,
		Currency: params.Currency,
		Balance:  params.Balance,
		UserID:   owner,
	}

	raw, err := s.gw.Insert(ctx, Collection, row)

	var created Wallet
	if err == nil {
		created, err = gateway.DecodeRow[Wallet](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to create wallet", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	s.items = append([]Wallet{created}, s.items...)
	s.mu.Unlock()

	s.notifier.Notify("Wallet created", created.Name, notify.Success)

	return nil
}

// Update patches the wallet matching both id and owner, so a guessed id can
// never touch another identity's row.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to update wallet", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	raw, err := s.gw.Update(ctx, Collection, ownerScoped(id, owner), patch)

	var updated Wallet
	if err == nil {
		updated, err = gateway.DecodeRow[Wallet](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to update wallet", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Notify("Wallet updated", updated.Name, notify.Success)

	return nil
}

// Delete removes the wallet matching both id and owner. The focused wallet
// is cleared when it is the one removed.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to delete wallet", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.Delete(ctx, Collection, ownerScoped(id, owner)); err != nil {
		s.notifier.Notify("Failed to delete wallet", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]

	for _, w := range s.items {
		if w.ID != id {
			kept = append(kept, w)
		}
	}

	s.items = kept

	if s.selected == id {
		s.selected = uuid.Nil
	}
	s.mu.Unlock()

	s.notifier.Notify("Wallet deleted", "", notify.Success)

	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func ownerScoped(id, owner uuid.UUID) []gateway.Eq {
	return []gateway.Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	}
}
