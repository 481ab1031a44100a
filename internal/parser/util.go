package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// partialDatePattern matches the DD/MMM date tokens BBVA prints
	// (e.g. "04/DIC"). No year; see identity.ResolveFullDate.
	partialDatePattern = regexp.MustCompile(`^\d{2}/[A-Z]{3}$`)

	// amountTokenPattern matches locale-formatted monetary tokens with
	// thousands separators and exactly two decimals ("1,234.56").
	amountTokenPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}$`)
)

// isPartialDate reports whether a token is a DD/MMM date.
func isPartialDate(token string) bool {
	return partialDatePattern.MatchString(token)
}

// isAmountToken reports whether a token looks like a monetary amount.
func isAmountToken(token string) bool {
	return amountTokenPattern.MatchString(token)
}

// parseAmount converts a locale-formatted token like "1,234.56" to a Decimal.
func parseAmount(token string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	clean = strings.TrimPrefix(clean, "$")
	return decimal.NewFromString(clean)
}
