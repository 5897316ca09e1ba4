package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clancy-dev/receipts-api/pkg/currency"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"UGX drops the minor unit and groups", "1000", "UGX", "UGX 1,000 only"},
		{"UGX rounds fractions away", "2500.75", "UGX", "UGX 2,501 only"},
		{"USD keeps two decimals", "10.5", "USD", "$10.50 only"},
		{"USD groups large amounts", "1234567.891", "USD", "$1,234,567.89 only"},
		{"EUR uses German separators with trailing symbol", "1234.56", "EUR", "1.234,56 € only"},
		{"KES keeps two decimals", "1234.5", "KES", "KES 1,234.50 only"},
		{"TZS drops the minor unit", "1000000", "TZS", "TZS 1,000,000 only"},
		{"unknown code falls back to UGX", "1000", "XXX", "UGX 1,000 only"},
		{"empty code falls back to UGX", "42", "", "UGX 42 only"},
		{"negative amounts keep the sign", "-1500", "UGX", "-UGX 1,500 only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, currency.Format(amount, tt.code))
		})
	}
}

func TestSupportedCodes(t *testing.T) {
	codes := currency.SupportedCodes()
	assert.Equal(t, []string{"UGX", "USD", "EUR", "KES", "TZS"}, codes)
	assert.Equal(t, "UGX", currency.DefaultCode, "default currency is the first supported code")

	for _, code := range codes {
		assert.True(t, currency.IsSupported(code), code)
	}
	assert.False(t, currency.IsSupported("JPY"))
}
