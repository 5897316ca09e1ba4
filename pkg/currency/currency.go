package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCode is the currency used when an unknown code is requested.
const DefaultCode = "UGX"

// spec describes how a single currency is rendered.
type spec struct {
	symbol       string
	symbolSuffix bool   // symbol after the amount (e.g. "1.234,56 €")
	groupSep     string
	decimalSep   string
	decimals     int32
}

// UGX and TZS customarily omit the minor unit.
var specs = map[string]spec{
	"UGX": {symbol: "UGX ", groupSep: ",", decimalSep: ".", decimals: 0},
	"USD": {symbol: "$", groupSep: ",", decimalSep: ".", decimals: 2},
	"EUR": {symbol: " €", symbolSuffix: true, groupSep: ".", decimalSep: ",", decimals: 2},
	"KES": {symbol: "KES ", groupSep: ",", decimalSep: ".", decimals: 2},
	"TZS": {symbol: "TZS ", groupSep: ",", decimalSep: ".", decimals: 0},
}

// SupportedCodes returns the supported currency codes in display order.
func SupportedCodes() []string {
	return []string{"UGX", "USD", "EUR", "KES", "TZS"}
}

// IsSupported reports whether code belongs to the supported set.
func IsSupported(code string) bool {
	_, ok := specs[code]
	return ok
}

// Format renders amount in the given currency, falling back to the default
// currency's format for unknown codes. Every result carries the literal
// suffix " only", signaling the figure is the full stated amount.
func Format(amount decimal.Decimal, code string) string {
	s, ok := specs[code]
	if !ok {
		s = specs[DefaultCode]
	}

	rounded := amount.Round(s.decimals)
	neg := rounded.IsNegative()
	text := rounded.Abs().StringFixed(s.decimals)

	intPart := text
	fracPart := ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if !s.symbolSuffix {
		b.WriteString(s.symbol)
	}
	b.WriteString(group(intPart, s.groupSep))
	if fracPart != "" {
		b.WriteString(s.decimalSep)
		b.WriteString(fracPart)
	}
	if s.symbolSuffix {
		b.WriteString(s.symbol)
	}
	b.WriteString(" only")
	return b.String()
}

// group inserts sep between every three digits, right to left.
func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
