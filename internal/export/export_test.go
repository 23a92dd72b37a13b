package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hamrotrack/internal/category"
	"hamrotrack/internal/export"
	"hamrotrack/internal/gateway"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

func TestWriteCSV(t *testing.T) {
	food := category.Category{ID: uuid.New(), Name: "Food", Color: "#ef4444"}
	main := wallet.Wallet{ID: uuid.New(), Name: "Main", Currency: "NPR"}

	expense := decimal.RequireFromString("85.30")
	income := decimal.RequireFromString("1500.00")

	txs := []transaction.Transaction{
		{
			ID:          uuid.New(),
			Amount:      expense.Neg(),
			Expense:     &expense,
			Description: "Groceries",
			Date:        gateway.Date{Time: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
			CategoryID:  &food.ID,
			WalletID:    main.ID,
		},
		{
			ID:          uuid.New(),
			Amount:      income,
			Income:      &income,
			Description: "Salary",
			Date:        gateway.Date{Time: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
			WalletID:    uuid.New(), // wallet no longer in the cache
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, txs, []category.Category{food}, []wallet.Wallet{main}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"date", "description", "kind", "amount", "category", "wallet", "currency"}, records[0])
	assert.Equal(t, []string{"2024-01-16", "Groceries", "expense", "-85.30", "Food", "Main", "NPR"}, records[1])
	assert.Equal(t, []string{"2024-01-15", "Salary", "income", "1500.00", "Uncategorized", "Unknown", "USD"}, records[2])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := export.WriteFile(dir, nil, nil, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, path, "transactions_")
}
