package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/astrafin/statement-engine/internal/models"
)

// Summary field names reported by Layout.SummaryField.
const (
	SummaryStartingBalance = "starting_balance"
	SummaryDeposits        = "deposits"
	SummaryCharges         = "charges"
	SummaryFinalBalance    = "final_balance"
)

// ErrSummaryMismatch means the bank-reported totals do not add up. This is
// fatal: a summary that fails its own arithmetic would silently poison the
// reconciliation pass downstream.
var ErrSummaryMismatch = errors.New("statement summary failed arithmetic validation")

// ErrSummaryIncomplete means the summary block was located but one of the
// four balance fields is missing, so the arithmetic check cannot run.
var ErrSummaryIncomplete = errors.New("statement summary is missing required fields")

var countTokenPattern = regexp.MustCompile(`^\d+$`)

// ExtractSummary locates the period-summary block and extracts the
// bank-reported totals.
//
// Returns (nil, nil, nil) when the block anchor is never found: a missing
// summary section is a warning for the caller, not an error. When the block
// is found but fields are absent, the partial summary is returned together
// with the missing-field names and ErrSummaryIncomplete. A complete summary
// that fails the arithmetic check returns ErrSummaryMismatch.
func ExtractSummary(pages []string, layout Layout) (*models.StatementSummary, []string, error) {
	summary := &models.StatementSummary{}
	found := map[string]bool{}
	inside := false
	sectionSeen := false

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)

			if layout.SummaryStart(line) {
				sectionSeen = true
				inside = true
				continue
			}
			if inside && layout.SummaryEnd(line) {
				inside = false
				continue
			}
			if !inside {
				continue
			}

			field, ok := layout.SummaryField(line)
			if !ok || found[field] {
				continue
			}

			switch field {
			case SummaryStartingBalance:
				amt, err := lastAmount(line)
				if err != nil {
					continue
				}
				summary.StartingBalance = amt
				found[field] = true
			case SummaryFinalBalance:
				amt, err := lastAmount(line)
				if err != nil {
					continue
				}
				summary.FinalBalance = amt
				found[field] = true
			case SummaryDeposits:
				amt, count, err := lastAmountAndCount(line)
				if err != nil {
					continue
				}
				summary.DepositsAmount = amt
				summary.NDeposits = count
				found[field] = true
			case SummaryCharges:
				amt, count, err := lastAmountAndCount(line)
				if err != nil {
					continue
				}
				summary.ChargesAmount = amt
				summary.NCharges = count
				found[field] = true
			}
		}
	}

	if !sectionSeen {
		return nil, nil, nil
	}

	var missing []string
	for _, field := range []string{SummaryStartingBalance, SummaryDeposits, SummaryCharges, SummaryFinalBalance} {
		if !found[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return summary, missing, fmt.Errorf("%w: %s", ErrSummaryIncomplete, strings.Join(missing, ", "))
	}

	if !summary.Balances() {
		calculated := summary.StartingBalance.Add(summary.DepositsAmount).Sub(summary.ChargesAmount)
		return summary, nil, fmt.Errorf("%w: calculated final balance %s, statement shows %s",
			ErrSummaryMismatch, calculated.StringFixed(2), summary.FinalBalance.StringFixed(2))
	}

	return summary, nil, nil
}

// lastAmount returns the rightmost monetary token on a line. Summary rows put
// the quantity last, after labels and counts, so positional token indices are
// never relied on.
func lastAmount(line string) (amt decimal.Decimal, err error) {
	tokens := strings.Fields(line)
	for i := len(tokens) - 1; i >= 0; i-- {
		if isAmountToken(tokens[i]) {
			return parseAmount(tokens[i])
		}
	}
	return amt, fmt.Errorf("no amount token on summary line")
}

// lastAmountAndCount returns the rightmost monetary token plus the movement
// count, which BBVA prints as a bare integer immediately before the amount.
func lastAmountAndCount(line string) (amt decimal.Decimal, count int, err error) {
	tokens := strings.Fields(line)
	amountIdx := -1
	for i := len(tokens) - 1; i >= 0; i-- {
		if isAmountToken(tokens[i]) {
			amountIdx = i
			break
		}
	}
	if amountIdx < 0 {
		return amt, 0, fmt.Errorf("no amount token on summary line")
	}
	amt, err = parseAmount(tokens[amountIdx])
	if err != nil {
		return amt, 0, err
	}

	for i := amountIdx - 1; i >= 0; i-- {
		if countTokenPattern.MatchString(tokens[i]) {
			count, err = strconv.Atoi(tokens[i])
			return amt, count, err
		}
	}
	// Count is informational; a row without it still validates.
	return amt, 0, nil
}
