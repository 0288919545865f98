// Package money holds the locale utilities for Brazilian-real amounts and
// the date formats used across the form and the remote store.
package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// WireDate is the format persisted to the store.
	WireDate = "2006-01-02"
	// DisplayDate is the format shown to the user.
	DisplayDate = "02/01/2006"
)

// ParseBRL parses a Brazilian-formatted currency string such as
// "1.234.567,89" or "R$ 1.234,56". A plain decimal with a dot separator
// ("1234567.89") is accepted as well. Blank input parses to zero.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	// "1.234,56" → thousands dots, comma decimals. A comma anywhere means
	// the Brazilian convention; otherwise treat the string as machine form.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// ParseBRLOrZero parses like ParseBRL but coerces malformed input to zero.
// Budget-tier derivation uses this so that a half-typed amount behaves as
// "no budget" rather than an error.
func ParseBRLOrZero(s string) decimal.Decimal {
	d, err := ParseBRL(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatBRL renders an amount as "R$ 1.234.567,89".
func FormatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), fracPart)
}

// ParseDate parses a wire-format (YYYY-MM-DD) date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(WireDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(WireDate)
}

// FormatDateDisplay renders a date in the DD/MM/YYYY display format.
func FormatDateDisplay(t time.Time) string {
	return t.Format(DisplayDate)
}
