package transaction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
)

// Store mirrors the remote transaction collection for the current identity.
type Store struct {
	gw       gateway.Client
	notifier notify.Notifier

	mu      sync.Mutex
	items   []Transaction
	loading bool
}

func NewStore(gw gateway.Client, notifier notify.Notifier) *Store {
	return &Store{gw: gw, notifier: notifier}
}

// Items returns a snapshot of the cached transactions, most recent date
// first.
func (s *Store) Items() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Filtered recomputes the filtered view from the current cache. No network
// call; relative ordering is preserved.
func (s *Store) Filtered(f Filter) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Transaction

	for _, t := range s.items {
		if f.matches(t) {
			out = append(out, t)
		}
	}

	return out
}

// Recent returns up to n of the most recent cached transactions.
func (s *Store) Recent(n int) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.items) {
		n = len(s.items)
	}

	out := make([]Transaction, n)
	copy(out, s.items[:n])

	return out
}

// Fetch replaces the cache with the remote state, optionally narrowed to one
// wallet. A rejected query degrades to an empty cache with a log line.
func (s *Store) Fetch(ctx context.Context, walletID *uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	match := []gateway.Eq{{Column: "user_id", Value: owner}}
	if walletID != nil {
		match = append(match, gateway.Eq{Column: "wallet_id", Value: *walletID})
	}

	raw, err := s.gw.Select(ctx, Collection, match,
		[]gateway.Order{{Column: "date", Descending: true}},
	)

	var rows []Transaction
	if err == nil {
		rows, err = gateway.DecodeRows[Transaction](raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("fetching transactions", "error", err)
		s.items = nil

		return nil
	}

	s.items = rows

	return nil
}

// Create validates locally, inserts the row stamped with the current
// identity, prepends the canonical record and then adjusts the wallet
// balance remotely. The balance adjustment is best-effort: the transaction
// row already exists when it runs, and a failure leaves a known
// inconsistency window that the next wallet fetch reconciles.
func (s *Store) Create(ctx context.Context, params CreateParams) error {
	if err := params.validate(); err != nil {
		s.notifier.Notify("Failed to add transaction", err.Error(), notify.Error)
		return err
	}

	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to add transaction", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	magnitude := params.Amount.Abs()
	signed := magnitude

	var income, expense *decimal.Decimal

	switch params.Kind {
	case KindExpense:
		signed = magnitude.Neg()
		expense = &magnitude
	default:
		income = &magnitude
	}

	row := struct {
		Amount      decimal.Decimal  `json:"amount"`
		Income      *decimal.Decimal `json:"income"`
		Expense     *decimal.Decimal `json:"expense"`
		Description string           `json:"description"`
		Date        gateway.Date     `json:"date"`
		CategoryID  *uuid.UUID       `json:"category_id"`
		WalletID    uuid.UUID        `json:"wallet_id"`
		UserID      uuid.UUID        `json:"user_id"`
	}{
		Amount:      signed,
		Income:      income,
		Expense:     expense,
		Description: params.Description,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
		WalletID:    params.WalletID,
		UserID:      owner,
	}

	raw, err := s.gw.Insert(ctx, Collection, row)

	var created Transaction
	if err == nil {
		created, err = gateway.DecodeRow[Transaction](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to add transaction", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	s.items = append([]Transaction{created}, s.items...)
	s.mu.Unlock()

	s.notifier.Notify("Transaction added", created.Description, notify.Success)

	// Two independent remote calls, no compensation: if this one fails the
	// transaction row persists while the balance stays unadjusted.
	if err := s.gw.AdjustWalletBalance(ctx, created.WalletID, created.Amount); err != nil {
		slog.Error("adjusting wallet balance", "wallet_id", created.WalletID, "error", err)
		s.notifier.Notify("Wallet balance not adjusted", err.Error(), notify.Error)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to update transaction", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	match := []gateway.Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	}

	raw, err := s.gw.Update(ctx, Collection, match, patch)

	var updated Transaction
	if err == nil {
		updated, err = gateway.DecodeRow[Transaction](raw)
	}

	if err != nil {
		s.notifier.Notify("Failed to update transaction", err.Error(), notify.Error)
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

	s.notifier.Notify("Transaction updated", updated.Description, notify.Success)

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to delete transaction", err.Error(), notify.Error)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	match := []gateway.Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	}

	if err := s.gw.Delete(ctx, Collection, match); err != nil {
		s.notifier.Notify("Failed to delete transaction", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]

	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	s.items = kept
	s.mu.Unlock()

	s.notifier.Notify("Transaction deleted", "", notify.Success)

	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
