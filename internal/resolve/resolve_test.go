package resolve_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hamrotrack/internal/category"
	"hamrotrack/internal/resolve"
	"hamrotrack/internal/wallet"
)

func TestByID(t *testing.T) {
	w := wallet.Wallet{ID: uuid.New(), Name: "Cash"}

	got, ok := resolve.ByID([]wallet.Wallet{w}, w.ID)
	assert.True(t, ok)
	assert.Equal(t, "Cash", got.Name)

	// Fallback fires exactly when the id is absent, whatever the reason:
	// deleted, wrong scope, or never loaded.
	_, ok = resolve.ByID([]wallet.Wallet{w}, uuid.New())
	assert.False(t, ok)

	_, ok = resolve.ByID[wallet.Wallet](nil, w.ID)
	assert.False(t, ok)
}

func TestWalletFallbacks(t *testing.T) {
	w := wallet.Wallet{ID: uuid.New(), Name: "Cash", Currency: "NPR"}
	wallets := []wallet.Wallet{w}

	assert.Equal(t, "Cash", resolve.WalletName(wallets, w.ID))
	assert.Equal(t, "NPR", resolve.WalletCurrency(wallets, w.ID))

	missing := uuid.New()
	assert.Equal(t, resolve.UnknownLabel, resolve.WalletName(wallets, missing))
	assert.Equal(t, resolve.DefaultCurrency, resolve.WalletCurrency(wallets, missing))
}

func TestCategoryFallbacks(t *testing.T) {
	c := category.Category{ID: uuid.New(), Name: "Food", Color: "#ef4444"}
	categories := []category.Category{c}

	assert.Equal(t, "Food", resolve.CategoryName(categories, &c.ID))
	assert.Equal(t, "#ef4444", resolve.CategoryColor(categories, &c.ID))

	assert.Equal(t, resolve.UncategorizedLabel, resolve.CategoryName(categories, nil))
	assert.Equal(t, category.FallbackColor, resolve.CategoryColor(categories, nil))

	missing := uuid.New()
	assert.Equal(t, resolve.UncategorizedLabel, resolve.CategoryName(categories, &missing))
	assert.Equal(t, category.FallbackColor, resolve.CategoryColor(categories, &missing))
}
