package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "$", Lookup("USD").Symbol)
	assert.Equal(t, "៛", Lookup("KHR").Symbol)
	assert.Equal(t, "USD", Lookup("EUR").Code, "unknown codes fall back to the default")
	assert.Equal(t, "USD", Lookup("").Code)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("USD"))
	assert.True(t, Known("KHR"))
	assert.False(t, Known("EUR"))
	assert.False(t, Known("usd"), "codes are case-sensitive")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"usd with grouping", "1234.5", "USD", "$1,234.50"},
		{"usd pads fraction digits", "10", "USD", "$10.00"},
		{"usd rounds to cents", "10.005", "USD", "$10.01"},
		{"khr has no fraction digits", "4000", "KHR", "៛4,000"},
		{"khr rounds to whole riel", "4000.4", "KHR", "៛4,000"},
		{"negative keeps the sign outside the symbol", "-25.5", "USD", "-$25.50"},
		{"zero", "0", "USD", "$0.00"},
		{"unknown code formats as the default", "7", "EUR", "$7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIsStable(t *testing.T) {
	amount := decimal.RequireFromString("99.99")
	first := Format(amount, "USD")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Format(amount, "USD"))
	}
}
