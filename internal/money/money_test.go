package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hamrotrack/internal/money"
)

func TestFormat_ISOCode(t *testing.T) {
	got := money.Format(decimal.RequireFromString("10"), "USD")

	assert.Contains(t, got, "USD")
	assert.Contains(t, got, "10.00")
}

func TestFormat_NepaliRupeeGlyph(t *testing.T) {
	got := money.Format(decimal.RequireFromString("1500"), "NPR")

	assert.Contains(t, got, "रु")
	assert.NotContains(t, got, "NPR")
}

func TestFormat_UnknownCodeFallsBack(t *testing.T) {
	got := money.Format(decimal.RequireFromString("3.5"), "???")

	assert.Equal(t, "??? 3.50", got)
}

func TestFormat_LargeAmountKeepsCents(t *testing.T) {
	// Formatting goes through float64; the cents must still come out exact
	// at realistic money magnitudes.
	got := money.Format(decimal.RequireFromString("98765432.10"), "USD")

	assert.Contains(t, got, "432.10")
}

func TestFormatMagnitude(t *testing.T) {
	got := money.FormatMagnitude(decimal.RequireFromString("-42"), "USD")

	assert.Contains(t, got, "42.00")
	assert.NotContains(t, got, "-")
}
