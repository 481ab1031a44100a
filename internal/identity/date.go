package identity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// spanishMonths maps the month abbreviations BBVA prints to month numbers.
var spanishMonths = map[string]time.Month{
	"ENE": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DIC": time.December,
}

// ResolveFullDate converts a partial DD/MMM statement date into a full
// calendar date using the statement period for the year. Statements print no
// year, so it is inferred: a transaction month numerically greater than the
// period month belongs to the previous year (a January statement showing
// "28/DIC" means last December).
//
// Unknown month tokens are an error; callers must not silently default.
func ResolveFullDate(partial string, period time.Time) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(partial), "/", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid partial date %q: want DD/MMM", partial)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day in partial date %q", partial)
	}

	monthToken := strings.ToUpper(strings.TrimSpace(parts[1]))
	month, ok := spanishMonths[monthToken]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month abbreviation %q in partial date %q", monthToken, partial)
	}

	year := period.Year()
	if month > period.Month() {
		year--
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// ValidateTransactionDate reports whether a resolved date is plausible for
// the statement period: within two months either side. Anything further out
// points at a parsing or period mix-up.
func ValidateTransactionDate(txDate, period time.Time) bool {
	monthDiff := (txDate.Year()*12 + int(txDate.Month())) - (period.Year()*12 + int(period.Month()))
	if monthDiff < 0 {
		monthDiff = -monthDiff
	}
	return monthDiff <= 2
}
