package category

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
)

// Store mirrors the remote category collection for the current identity.
// Same contract as the wallet store: wholesale fetch, pessimistic writes,
// last-write-wins between racing operations.
type Store struct {
	gw       gateway.Client
	notifier notify.Notifier

	mu      sync.Mutex
	items   []Category
	loading bool
}

func NewStore(gw gateway.Client, notifier notify.Notifier) *Store {
	return &Store{gw: gw, notifier: notifier}
}

func (s *Store) Items() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Category, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

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

	var rows []Category
	if err == nil {
		rows, err = gateway.DecodeRows[Category](raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("fetching categories", "error", err)
		s.items = nil

		return nil
	}

	s.items = rows

	return nil
}

func (s *Store) Create(ctx context.Context, params CreateParams) error {
	if params.Name == "" {
		s.notifier.Notify("Failed to create category", ErrNameRequired.Error(), notify.Error)
		return ErrNameRequired
	}

	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to create category", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	color := params.Color
	if color == "" {
		color = FallbackColor
	}

	row := struct {
		Name   string    `json:"name"`
		Color  string    `json:"color"`
		UserID uuid.UUID `json:"user_id"`
	}{
		Name:   params.Name,
		Color:  color,
		UserID: owner,
	}

	raw, err := s.gw.Insert(ctx, Collection, row)

	var created Category
	if err == nil {
		created, err = gateway.DecodeRow[Category](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to create category", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	s.items = append([]Category{created}, s.items...)
	s.mu.Unlock()

	s.notifier.Notify("Category created", created.Name, notify.Success)

	return nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to update category", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	match := []gateway.Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	}

	raw, err := s.gw.Update(ctx, Collection, match, patch)

	var updated Category
	if err == nil {
		updated, err = gateway.DecodeRow[Category](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to update category", err.Error(), notify.Error)
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

	s.notifier.Notify("Category updated", updated.Name, notify.Success)

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to delete category", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	match := []gateway.Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	}

	if err := s.gw.Delete(ctx, Collection, match); err != nil {
		s.notifier.Notify("Failed to delete category", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]

	for _, c := range s.items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	s.items = kept
	s.mu.Unlock()

	s.notifier.Notify("Category deleted", "", notify.Success)

	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
