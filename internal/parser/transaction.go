package parser

import (
	"fmt"
	"strings"

	"github.com/astrafin/statement-engine/internal/models"
)

// ParseLine converts one raw transaction line into a structured transaction.
// Amounts always sit at the end of the line, so trailing tokens are consumed
// right-to-left until the first non-amount token, which marks the end of the
// description:
//
//	"04/DIC 04/DIC SPEI ENVIADO BANAMEX 1,500.00 23,740.35 23,740.35"
//	 date   date   <-- description -->   amount  saldo_op  saldo_liq
//
// Three trailing amounts mean the bank printed both running balances; a
// single amount means the line sits at a reporting boundary and carries no
// balances. Any other count is a malformed line. The movement direction is
// left unresolved: that requires statement-wide context (see classifier).
func ParseLine(raw models.RawLine) (*models.ParsedTransaction, error) {
	tokens := strings.Fields(raw.Text)

	// Minimum shape: date date description amount.
	if len(tokens) < 4 {
		return nil, fmt.Errorf("too few tokens (%d)", len(tokens))
	}

	if !isPartialDate(tokens[0]) || !isPartialDate(tokens[1]) {
		return nil, fmt.Errorf("line does not start with a date pair")
	}

	rest := tokens[2:]

	// Walk backwards collecting amount tokens; stop at the first token
	// that is not an amount (the tail of the description).
	amountStart := len(rest)
	for amountStart > 0 && isAmountToken(rest[amountStart-1]) {
		amountStart--
	}
	amountTokens := rest[amountStart:]

	description := strings.Join(rest[:amountStart], " ")

	tx := &models.ParsedTransaction{
		Date:            tokens[0],
		DateLiquidacion: tokens[1],
		Description:     description,
		Detail:          strings.Join(raw.Detail, " "),
	}

	switch len(amountTokens) {
	case 3:
		amt, err := parseAmount(amountTokens[0])
		if err != nil {
			return nil, fmt.Errorf("bad amount token: %w", err)
		}
		op, err := parseAmount(amountTokens[1])
		if err != nil {
			return nil, fmt.Errorf("bad operation balance token: %w", err)
		}
		liq, err := parseAmount(amountTokens[2])
		if err != nil {
			return nil, fmt.Errorf("bad settlement balance token: %w", err)
		}
		tx.AmountAbs = amt
		tx.SaldoOperacion = &op
		tx.SaldoLiquidacion = &liq
	case 1:
		amt, err := parseAmount(amountTokens[0])
		if err != nil {
			return nil, fmt.Errorf("bad amount token: %w", err)
		}
		tx.AmountAbs = amt
	case 0:
		return nil, fmt.Errorf("no trailing amount found")
	default:
		return nil, fmt.Errorf("unexpected trailing amount count: %d", len(amountTokens))
	}

	return tx, nil
}

// ParseLines runs ParseLine over a batch, skipping malformed lines with a
// warning instead of failing the whole statement.
func ParseLines(raws []models.RawLine) ([]models.ParsedTransaction, []string) {
	txs := make([]models.ParsedTransaction, 0, len(raws))
	var warnings []string

	for i, raw := range raws {
		tx, err := ParseLine(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped malformed transaction line %d: %v", i+1, err))
			continue
		}
		txs = append(txs, *tx)
	}

	return txs, warnings
}
