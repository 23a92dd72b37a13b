// Package resolve looks foreign keys up against a store's current cache.
// Absence is a normal outcome: stores load independently, rows get deleted
// under each other, and a cache may simply not be loaded yet. Every lookup
// therefore degrades to a stable fallback instead of failing.
package resolve

import (
	"github.com/google/uuid"

	"hamrotrack/internal/category"
	"hamrotrack/internal/wallet"
)

const (
	UnknownLabel       = "Unknown"
	UncategorizedLabel = "Uncategorized"
	DefaultCurrency    = "USD"
)

// Entity is any cached record addressable by id.
type Entity interface {
	EntityID() uuid.UUID
}

// ByID returns the cached record with the given id, if present.
func ByID[T Entity](items []T, id uuid.UUID) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}

	var zero T

	return zero, false
}

// WalletName resolves a wallet reference to its display name.
func WalletName(wallets []wallet.Wallet, id uuid.UUID) string {
	if w, ok := ByID(wallets, id); ok {
		return w.Name
	}

	return UnknownLabel
}

// WalletCurrency resolves a wallet reference to its currency code.
func WalletCurrency(wallets []wallet.Wallet, id uuid.UUID) string {
	if w, ok := ByID(wallets, id); ok {
		return w.Currency
	}

	return DefaultCurrency
}

// CategoryName resolves an optional category reference to its display name.
func CategoryName(categories []category.Category, id *uuid.UUID) string {
	if id == nil {
		return UncategorizedLabel
	}

	if c, ok := ByID(categories, *id); ok {
		return c.Name
	}

	return UncategorizedLabel
}

// CategoryColor resolves an optional category reference to its display
// color.
func CategoryColor(categories []category.Category, id *uuid.UUID) string {
	if id == nil {
		return category.FallbackColor
	}

	if c, ok := ByID(categories, *id); ok {
		return c.Color
	}

	return category.FallbackColor
}
