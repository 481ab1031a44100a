package classifier

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/astrafin/statement-engine/internal/models"
)

// Classifier assigns a movement direction and signed amount to parsed
// transactions in three passes of decreasing confidence:
//
//	Pass A  balance delta     bank-asserted arithmetic on running balances
//	Pass B  keyword match     description heuristics, detail-line fallback
//	Pass C  segment closure   arithmetic reconciliation between anchors
//
// Each pass only touches transactions still unresolved by earlier passes.
// Whatever survives all three is finalized as UNKNOWN rather than guessed:
// an honest "needs review" beats a confident wrong sign.
type Classifier struct {
	Rules Rules
	Log   zerolog.Logger
}

// New returns a Classifier with the given rule sets.
func New(rules Rules, log zerolog.Logger) *Classifier {
	return &Classifier{Rules: rules, Log: log}
}

// Classify runs all three passes over the transactions in place and returns
// diagnostic warnings. Classification never fails: unresolvable transactions
// end up UNKNOWN with needs_review set, surfaced in the warnings count.
func (c *Classifier) Classify(txs []models.ParsedTransaction, summary *models.StatementSummary) []string {
	cursor := balanceCursor{}
	if summary != nil {
		cursor = balanceCursor{known: true, value: summary.StartingBalance}
	}

	c.passBalanceDelta(txs, cursor)
	c.passKeywords(txs)
	c.passSegmentClosure(txs, summary)

	unresolved := 0
	for i := range txs {
		if !txs[i].Resolved() {
			txs[i].Resolve(models.MovementUnknown)
			unresolved++
		}
	}

	warnings := c.validateTotals(txs, summary)
	if unresolved > 0 {
		warnings = append(warnings, fmt.Sprintf("%d transaction(s) could not be classified and need manual review", unresolved))
	}
	return warnings
}

// balanceCursor is the "current known balance" threaded through Pass A. It is
// an explicit accumulator, never package state, so the pass stays a pure
// fold over the transaction sequence.
type balanceCursor struct {
	known bool
	value decimal.Decimal
}

// passBalanceDelta resolves transactions whose printed running balance moved
// relative to the cursor. This is the highest-confidence signal: the bank
// asserts the arithmetic, nothing is inferred.
func (c *Classifier) passBalanceDelta(txs []models.ParsedTransaction, cursor balanceCursor) balanceCursor {
	for i := range txs {
		cursor = c.balanceStep(&txs[i], cursor)
	}
	return cursor
}

// balanceStep classifies a single transaction against the cursor and returns
// the advanced cursor. Every balance-carrying transaction updates the cursor,
// resolved or not.
func (c *Classifier) balanceStep(tx *models.ParsedTransaction, cursor balanceCursor) balanceCursor {
	if tx.SaldoLiquidacion == nil {
		return cursor
	}
	liq := *tx.SaldoLiquidacion

	if cursor.known {
		switch liq.Cmp(cursor.value) {
		case 1:
			tx.Resolve(models.MovementAbono)
			c.trace(tx, "balance increased")
		case -1:
			tx.Resolve(models.MovementCargo)
			c.trace(tx, "balance decreased")
		default:
			// Settlement balance unchanged. The operation-date
			// balance sometimes still moved; use it before
			// deferring to keywords.
			if tx.SaldoOperacion != nil && !tx.SaldoOperacion.Equal(cursor.value) {
				if tx.SaldoOperacion.GreaterThan(cursor.value) {
					tx.Resolve(models.MovementAbono)
					c.trace(tx, "operation balance increased")
				} else {
					tx.Resolve(models.MovementCargo)
					c.trace(tx, "operation balance decreased")
				}
			}
		}
	}

	return balanceCursor{known: true, value: liq}
}

// passKeywords resolves balance-less transactions by matching the description
// against the income and expense keyword sets. A hit in exactly one set
// resolves; a hit in both or neither defers to Pass C. Known-ambiguous
// phrases consult the detail line instead.
func (c *Classifier) passKeywords(txs []models.ParsedTransaction) {
	for i := range txs {
		tx := &txs[i]
		if tx.Resolved() {
			continue
		}

		desc := strings.ToUpper(tx.Description)

		if rule, ok := c.matchAmbiguous(desc); ok {
			if c.isSelfTransfer(tx.Detail, rule) {
				tx.Resolve(models.MovementAbono)
				c.trace(tx, "ambiguous phrase, detail names self-transfer")
			} else {
				tx.Resolve(models.MovementCargo)
				c.trace(tx, "ambiguous phrase, detail names third party")
			}
			continue
		}

		income := matchesAny(desc, c.Rules.IncomeKeywords)
		expense := matchesAny(desc, c.Rules.ExpenseKeywords)

		switch {
		case income && !expense:
			tx.Resolve(models.MovementAbono)
			c.trace(tx, "income keyword")
		case expense && !income:
			tx.Resolve(models.MovementCargo)
			c.trace(tx, "expense keyword")
		}
	}
}

func (c *Classifier) matchAmbiguous(desc string) (AmbiguousRule, bool) {
	for _, rule := range c.Rules.Ambiguous {
		if rule.Phrase != "" && strings.Contains(desc, strings.ToUpper(rule.Phrase)) {
			return rule, true
		}
	}
	return AmbiguousRule{}, false
}

func (c *Classifier) isSelfTransfer(detail string, rule AmbiguousRule) bool {
	if detail == "" {
		return false
	}
	upper := strings.ToUpper(detail)
	if c.Rules.AccountHolder != "" && strings.Contains(upper, strings.ToUpper(c.Rules.AccountHolder)) {
		return true
	}
	return matchesAny(upper, rule.SelfTransferMarkers)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

// anchorPoint marks a position in the transaction sequence with a known
// balance. idx is the transaction index, or -1 / len(txs) for the virtual
// boundary anchors derived from the statement summary.
type anchorPoint struct {
	idx int
	bal decimal.Decimal
}

// passSegmentClosure partitions the sequence into segments bounded by
// consecutive anchors and resolves segments that close arithmetically: when
// the gap between the expected balance delta and the already-resolved sum
// equals exactly the absolute sum of the unresolved remainder, every
// remaining transaction in the segment points the same way. Segments that do
// not close are deliberately left alone: a partial match would make the
// per-transaction direction a guess.
func (c *Classifier) passSegmentClosure(txs []models.ParsedTransaction, summary *models.StatementSummary) {
	anchors := collectAnchors(txs, summary)
	if len(anchors) < 2 {
		return
	}

	for k := 1; k < len(anchors); k++ {
		before, after := anchors[k-1], anchors[k]

		// Segment members run from just past the opening anchor up to
		// and including the closing anchor transaction, whose own
		// amount contributes to the delta its balance closes.
		lo, hi := before.idx+1, after.idx
		if hi >= len(txs) {
			hi = len(txs) - 1
		}
		if lo > hi {
			continue
		}

		expected := after.bal.Sub(before.bal)
		computed := decimal.Zero
		residual := decimal.Zero
		var unresolved []int

		for i := lo; i <= hi; i++ {
			if txs[i].Resolved() {
				computed = computed.Add(*txs[i].Amount)
			} else {
				residual = residual.Add(txs[i].AmountAbs)
				unresolved = append(unresolved, i)
			}
		}

		if len(unresolved) == 0 {
			continue
		}

		gap := expected.Sub(computed)
		if gap.Abs().Sub(residual).Abs().GreaterThan(models.BalanceTolerance) {
			continue
		}

		mt := models.MovementAbono
		if gap.IsNegative() {
			mt = models.MovementCargo
		}
		for _, i := range unresolved {
			txs[i].Resolve(mt)
			c.trace(&txs[i], "segment closure")
		}
	}
}

// collectAnchors gathers every balance-carrying transaction plus, when a
// summary exists, virtual anchors for the statement's starting and final
// balances so the first and last segments can also close.
func collectAnchors(txs []models.ParsedTransaction, summary *models.StatementSummary) []anchorPoint {
	var anchors []anchorPoint
	if summary != nil {
		anchors = append(anchors, anchorPoint{idx: -1, bal: summary.StartingBalance})
	}
	for i := range txs {
		if txs[i].HasBalance() {
			anchors = append(anchors, anchorPoint{idx: i, bal: *txs[i].SaldoLiquidacion})
		}
	}
	if summary != nil {
		anchors = append(anchors, anchorPoint{idx: len(txs), bal: summary.FinalBalance})
	}
	return anchors
}

// validateTotals re-sums the classified transactions and compares them with
// the bank-reported totals. Divergence is diagnostic output for the caller,
// never a classification input.
func (c *Classifier) validateTotals(txs []models.ParsedTransaction, summary *models.StatementSummary) []string {
	if summary == nil {
		return nil
	}

	totalAbonos := decimal.Zero
	totalCargos := decimal.Zero
	for i := range txs {
		switch txs[i].MovementType {
		case models.MovementAbono:
			totalAbonos = totalAbonos.Add(*txs[i].Amount)
		case models.MovementCargo:
			totalCargos = totalCargos.Add(txs[i].Amount.Abs())
		}
	}

	var warnings []string
	if totalAbonos.Sub(summary.DepositsAmount).Abs().GreaterThan(models.BalanceTolerance) {
		warnings = append(warnings, fmt.Sprintf("classified deposits total %s diverges from statement total %s",
			totalAbonos.StringFixed(2), summary.DepositsAmount.StringFixed(2)))
	}
	if totalCargos.Sub(summary.ChargesAmount).Abs().GreaterThan(models.BalanceTolerance) {
		warnings = append(warnings, fmt.Sprintf("classified charges total %s diverges from statement total %s",
			totalCargos.StringFixed(2), summary.ChargesAmount.StringFixed(2)))
	}
	return warnings
}

func (c *Classifier) trace(tx *models.ParsedTransaction, reason string) {
	c.Log.Debug().
		Str("date", tx.Date).
		Str("description", tx.Description).
		Str("movement_type", string(tx.MovementType)).
		Str("reason", reason).
		Msg("transaction classified")
}
