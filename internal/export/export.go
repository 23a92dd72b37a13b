// Package export writes the transaction cache to CSV with category and
// wallet ids resolved to their display labels.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hamrotrack/internal/category"
	"hamrotrack/internal/resolve"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

var header = []string{"date", "description", "kind", "amount", "category", "wallet", "currency"}

// WriteCSV renders the given transactions to w. Amounts keep their sign so
// the file round-trips through the statement importer.
func WriteCSV(w io.Writer, txs []transaction.Transaction, categories []category.Category, wallets []wallet.Wallet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		record := []string{
			t.Date.Format(time.DateOnly),
			t.Description,
			string(t.Kind()),
			t.Amount.StringFixed(2),
			resolve.CategoryName(categories, t.CategoryID),
			resolve.WalletName(wallets, t.WalletID),
			resolve.WalletCurrency(wallets, t.WalletID),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// WriteFile exports to a timestamped CSV in dir and returns the path.
func WriteFile(dir string, txs []transaction.Transaction, categories []category.Category, wallets []wallet.Wallet) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, txs, categories, wallets); err != nil {
		return "", err
	}

	return path, nil
}
