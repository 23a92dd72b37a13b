package importer_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hamrotrack/internal/importer"
	"hamrotrack/internal/transaction"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2024-01-15,Salary,1500.00",
		"2024-01-16,Groceries,-85.30",
		"",
		"16/01/2024,Coffee,-3.50",
	}, "\n")

	rows, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, transaction.KindIncome, rows[0].Kind)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, "Salary", rows[0].Description)
	assert.Equal(t, "2024-01-15", rows[0].Date.Format("2006-01-02"))

	assert.Equal(t, transaction.KindExpense, rows[1].Kind)
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("85.30")), "amount is a positive magnitude")

	assert.Equal(t, "2024-01-16", rows[2].Date.Format("2006-01-02"), "slash dates parse day-first")
}

func TestParse_SkipsPreambleAndAliasColumns(t *testing.T) {
	input := strings.Join([]string{
		"My Bank - Account Statement",
		"Period,2024-01-01 to 2024-01-31",
		"Transaction Date,Narration,Value",
		"2024-01-05,ATM withdrawal,-200",
	}, "\n")

	rows, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ATM withdrawal", rows[0].Description)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("200")))
}

func TestParse_ThousandsSeparators(t *testing.T) {
	input := "date,description,amount\n2024-02-01,Rent,\"-1,200.00\"\n"

	rows, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1200.00")))
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := importer.Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestParse_BadRowAbortsWithRowNumber(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount",
		"2024-01-05,Fine,-1.00",
		"not-a-date,Broken,-2.00",
	}, "\n")

	_, err := importer.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestRow_Params(t *testing.T) {
	walletID := uuid.New()
	categoryID := uuid.New()

	rows, err := importer.Parse(strings.NewReader("date,description,amount\n2024-03-01,Books,-42\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	p := rows[0].Params(walletID, &categoryID)

	assert.Equal(t, transaction.KindExpense, p.Kind)
	assert.Equal(t, walletID, p.WalletID)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, categoryID, *p.CategoryID)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("42")))
}
