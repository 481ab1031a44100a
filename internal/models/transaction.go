package models

import "github.com/shopspring/decimal"

// MovementType is the direction assigned to a transaction by the classifier.
// The values match what the bank prints: ABONO is money in, CARGO is money out.
type MovementType string

const (
	MovementAbono   MovementType = "ABONO"
	MovementCargo   MovementType = "CARGO"
	MovementUnknown MovementType = "UNKNOWN"
)

// BankType identifies a supported statement layout.
type BankType string

const (
	BankBBVA BankType = "bbva"
)

// RawLine is a candidate transaction string exactly as printed in the detail
// section, plus any indented continuation lines that follow it. Discarded
// after parsing.
type RawLine struct {
	Text   string
	Detail []string
}

// ParsedTransaction is the unit of work from line parsing through
// classification. Dates keep the partial DD/MMM source format; resolving the
// year is the consumer's job (see identity.ResolveFullDate).
//
// AmountAbs is the one fact taken as ground truth from the statement and is
// never altered. Amount is derived: nil exactly when MovementType is UNKNOWN,
// +AmountAbs for ABONO, -AmountAbs for CARGO.
type ParsedTransaction struct {
	Date             string           `json:"date"`
	DateLiquidacion  string           `json:"date_liquidacion"`
	Description      string           `json:"description"`
	Detail           string           `json:"detail,omitempty"`
	AmountAbs        decimal.Decimal  `json:"amount_abs"`
	SaldoOperacion   *decimal.Decimal `json:"saldo_operacion,omitempty"`
	SaldoLiquidacion *decimal.Decimal `json:"saldo_liquidacion,omitempty"`
	MovementType     MovementType     `json:"movement_type"`
	Amount           *decimal.Decimal `json:"amount"`
	NeedsReview      bool             `json:"needs_review"`
}

// HasBalance reports whether the bank printed a running balance for this
// transaction, which makes it usable as a reconciliation anchor.
func (t *ParsedTransaction) HasBalance() bool {
	return t.SaldoLiquidacion != nil
}

// Resolved reports whether the classifier assigned a final direction.
func (t *ParsedTransaction) Resolved() bool {
	return t.MovementType == MovementAbono || t.MovementType == MovementCargo
}

// Resolve sets the movement type and derives the signed amount from
// AmountAbs. Classification fields are only ever written through here so the
// amount/type invariant cannot drift.
func (t *ParsedTransaction) Resolve(mt MovementType) {
	switch mt {
	case MovementAbono:
		amt := t.AmountAbs
		t.Amount = &amt
		t.NeedsReview = false
	case MovementCargo:
		amt := t.AmountAbs.Neg()
		t.Amount = &amt
		t.NeedsReview = false
	default:
		t.Amount = nil
		t.NeedsReview = true
	}
	t.MovementType = mt
}

// StatementSummary holds the bank-reported period totals from the summary
// block (the "Comportamiento" section on BBVA statements).
type StatementSummary struct {
	StartingBalance decimal.Decimal `json:"starting_balance"`
	FinalBalance    decimal.Decimal `json:"final_balance"`
	DepositsAmount  decimal.Decimal `json:"deposits_amount"`
	ChargesAmount   decimal.Decimal `json:"charges_amount"`
	NDeposits       int             `json:"n_deposits"`
	NCharges        int             `json:"n_charges"`
}

// BalanceTolerance is the rounding slack allowed when checking bank-reported
// arithmetic: one cent of the statement currency.
var BalanceTolerance = decimal.RequireFromString("0.01")

// Balances reports whether starting + deposits - charges equals the final
// balance within BalanceTolerance. A summary that fails this check cannot be
// trusted as a reconciliation anchor.
func (s *StatementSummary) Balances() bool {
	calculated := s.StartingBalance.Add(s.DepositsAmount).Sub(s.ChargesAmount)
	return calculated.Sub(s.FinalBalance).Abs().LessThanOrEqual(BalanceTolerance)
}

// Result is the output of a full engine invocation.
// Summary is nil only when the summary section could not be located at all.
type Result struct {
	Transactions []ParsedTransaction `json:"transactions"`
	Warnings     []string            `json:"warnings"`
	Summary      *StatementSummary   `json:"summary"`
}
