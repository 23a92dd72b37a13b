package transaction_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hamrotrack/internal/transaction"
)

func patchFields(t *testing.T, p transaction.Patch) map[string]json.RawMessage {
	t.Helper()

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &fields))

	return fields
}

func TestPatch_SetAmount(t *testing.T) {
	t.Run("ExpenseSignsAmountAndNullsIncome", func(t *testing.T) {
		var p transaction.Patch
		p.SetAmount(transaction.KindExpense, dec("40"))

		fields := patchFields(t, p)

		assert.JSONEq(t, `"-40"`, string(fields["amount"]))
		assert.JSONEq(t, `"40"`, string(fields["expense"]))
		assert.Equal(t, "null", string(fields["income"]))
	})

	t.Run("IncomeNullsExpense", func(t *testing.T) {
		var p transaction.Patch
		p.SetAmount(transaction.KindIncome, dec("12.50"))

		fields := patchFields(t, p)

		assert.JSONEq(t, `"12.5"`, string(fields["amount"]))
		assert.JSONEq(t, `"12.5"`, string(fields["income"]))
		assert.Equal(t, "null", string(fields["expense"]))
	})

	t.Run("KindChangeClearsStalePairColumn", func(t *testing.T) {
		var p transaction.Patch
		p.SetAmount(transaction.KindExpense, dec("40"))
		p.SetAmount(transaction.KindIncome, dec("40"))

		fields := patchFields(t, p)

		assert.JSONEq(t, `"40"`, string(fields["amount"]))
		assert.JSONEq(t, `"40"`, string(fields["income"]))
		assert.Equal(t, "null", string(fields["expense"]))
	})

	t.Run("MagnitudeIsNormalized", func(t *testing.T) {
		var p transaction.Patch
		p.SetAmount(transaction.KindExpense, dec("-40"))

		fields := patchFields(t, p)

		assert.JSONEq(t, `"-40"`, string(fields["amount"]))
		assert.JSONEq(t, `"40"`, string(fields["expense"]))
	})
}

func TestPatch_WithoutAmountOmitsPair(t *testing.T) {
	desc := "team lunch"
	fields := patchFields(t, transaction.Patch{Description: &desc})

	assert.Contains(t, fields, "description")
	assert.NotContains(t, fields, "amount")
	assert.NotContains(t, fields, "income")
	assert.NotContains(t, fields, "expense")
}
