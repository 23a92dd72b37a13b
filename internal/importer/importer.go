// Package importer parses bank statement CSV exports into transaction
// create params. The wallet and category are not part of the file; the
// caller assigns them before handing rows to the transaction store.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "hamrotrack/internal/encoding"
	"hamrotrack/internal/gateway"
	"hamrotrack/internal/transaction"
)

// Row is one parsed statement line, not yet bound to a wallet.
type Row struct {
	Kind        transaction.Kind
	Amount      decimal.Decimal // positive magnitude
	Description string
	Date        gateway.Date
}

// Params binds a parsed row to a wallet for creation.
func (r Row) Params(walletID uuid.UUID, categoryID *uuid.UUID) transaction.CreateParams {
	return transaction.CreateParams{
		Kind:        r.Kind,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		CategoryID:  categoryID,
		WalletID:    walletID,
	}
}

// header aliases accepted per column, lowercased.
var (
	dateCols        = []string{"date", "transaction date", "posted date"}
	descriptionCols = []string{"description", "details", "memo", "narration"}
	amountCols      = []string{"amount", "value"}
)

var dateLayouts = []string{time.DateOnly, "02/01/2006", "01/02/2006", "02-01-2006"}

// Parse reads a statement CSV. The header row is located anywhere in the
// leading rows; rows before it are ignored (banks love preamble lines).
// Unparseable data rows abort the import so the user never silently loses
// lines.
func Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	dateIdx, descIdx, amountIdx, headerIdx, ok := locateHeader(records)
	if !ok {
		return nil, fmt.Errorf("no header row with date, description and amount columns")
	}

	var rows []Row

	for i, record := range records[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based, for error messages

		if isBlank(record) {
			continue
		}

		date, err := parseDate(cell(record, dateIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		description := cell(record, descIdx)
		if description == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, err := parseAmount(cell(record, amountIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		kind := transaction.KindIncome
		if amount.IsNegative() {
			kind = transaction.KindExpense
		}

		rows = append(rows, Row{
			Kind:        kind,
			Amount:      amount.Abs(),
			Description: description,
			Date:        date,
		})
	}

	return rows, nil
}

func locateHeader(records [][]string) (dateIdx, descIdx, amountIdx, headerIdx int, ok bool) {
	for rowIdx, record := range records {
		cols := make(map[string]int, len(record))
		for i, c := range record {
			cols[strings.ToLower(strings.TrimSpace(c))] = i
		}

		dateIdx, okDate := firstMatch(cols, dateCols)
		descIdx, okDesc := firstMatch(cols, descriptionCols)
		amountIdx, okAmount := firstMatch(cols, amountCols)

		if okDate && okDesc && okAmount {
			return dateIdx, descIdx, amountIdx, rowIdx, true
		}
	}

	return 0, 0, 0, 0, false
}

func firstMatch(cols map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := cols[name]; ok {
			return idx, true
		}
	}

	return 0, false
}

func parseDate(s string) (gateway.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return gateway.Date{Time: t}, nil
		}
	}

	return gateway.Date{}, fmt.Errorf("unrecognized date %q", s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(s)

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unrecognized amount %q", s)
	}

	return amount, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
