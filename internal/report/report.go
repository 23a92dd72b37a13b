// Package report derives read-only aggregates from the collection stores.
// Builders own no state and recompute from the caches on every call.
package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/category"
	"hamrotrack/internal/money"
	"hamrotrack/internal/resolve"
	"hamrotrack/internal/transaction"
)

// Summary totals a transaction set in a single currency.
type Summary struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Net      decimal.Decimal
	Currency string
}

func (s Summary) FormatIncome() string  { return money.Format(s.Income, s.Currency) }
func (s Summary) FormatExpense() string { return money.Format(s.Expense, s.Currency) }
func (s Summary) FormatNet() string     { return money.Format(s.Net, s.Currency) }

// Balance totals income and expense over the given transactions. Expense is
// reported as a positive magnitude; net is income minus expense.
func Balance(txs []transaction.Transaction, currencyCode string) Summary {
	s := Summary{Currency: currencyCode}

	for _, t := range txs {
		switch t.Kind() {
		case transaction.KindIncome:
			s.Income = s.Income.Add(t.Magnitude())
		case transaction.KindExpense:
			s.Expense = s.Expense.Add(t.Magnitude())
		}
	}

	s.Net = s.Income.Sub(s.Expense)

	return s
}

// CategorySlice is one wedge of the expense breakdown.
type CategorySlice struct {
	Name  string
	Value decimal.Decimal
	Color string
}

// ExpenseByCategory groups expense transactions by category and sums each
// group's magnitude. Transactions whose category is missing or no longer
// resolvable collapse into a single "Uncategorized" wedge with a neutral
// color. The result carries no ordering guarantee; callers that need a
// deterministic order sort it themselves.
func ExpenseByCategory(txs []transaction.Transaction, categories []category.Category) []CategorySlice {
	type bucket struct {
		name  string
		color string
		total decimal.Decimal
	}

	buckets := make(map[uuid.UUID]*bucket)

	for _, t := range txs {
		if t.Kind() != transaction.KindExpense {
			continue
		}

		key := uuid.Nil
		name := resolve.UncategorizedLabel
		color := category.FallbackColor

		if t.CategoryID != nil {
			if c, ok := resolve.ByID(categories, *t.CategoryID); ok {
				key = c.ID
				name = c.Name
				color = c.Color
			}
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: name, color: color}
			buckets[key] = b
		}

		b.total = b.total.Add(expenseValue(t))
	}

	out := make([]CategorySlice, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CategorySlice{Name: b.name, Value: b.total, Color: b.color})
	}

	return out
}

func expenseValue(t transaction.Transaction) decimal.Decimal {
	if t.Expense != nil {
		return *t.Expense
	}

	return t.Magnitude()
}
