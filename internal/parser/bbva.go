package parser

import (
	"regexp"
	"strings"
)

// BBVALayout handles BBVA Mexico debit statement PDFs.
//
// The transaction detail section looks like:
//
//	DETALLE DE MOVIMIENTOS REALIZADOS
//	OPER LIQ DESCRIPCION ... CARGOS/ABONOS OPERACION LIQUIDACION
//	04/DIC 04/DIC SPEI ENVIADO BANAMEX 1,500.00 23,740.35 23,740.35
//	  0000001 BNET 012180004750335733 JUAN PEREZ
//	05/DIC 05/DIC PAGO TARJETA DE CREDITO 350.00
//	TOTAL DE MOVIMIENTOS ...
//
// Transaction lines carry two DD/MMM dates (operation and settlement) followed
// by the description and one or three trailing amounts. Indented lines are
// detail/continuation rows attached to the transaction above them.
type BBVALayout struct{}

func (l *BBVALayout) BankName() string {
	return "BBVA"
}

// txnPrefixPattern matches the "DD/MMM DD/MMM" date pair that starts every
// real transaction line.
var txnPrefixPattern = regexp.MustCompile(`^\d{2}/[A-Z]{3}\s+\d{2}/[A-Z]{3}`)

func (l *BBVALayout) DetailStart(line string) bool {
	return strings.Contains(strings.ToLower(line), "detalle de movimientos")
}

func (l *BBVALayout) DetailEnd(line string) bool {
	return strings.Contains(strings.ToLower(line), "total de movimientos")
}

func (l *BBVALayout) Classify(line string) LineKind {
	trimmed := strings.TrimRight(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return LineNoise
	}

	// Indented lines are continuation detail (references, RFC, counterparty).
	if strings.HasPrefix(trimmed, " ") || strings.HasPrefix(trimmed, "\t") {
		if txnPrefixPattern.MatchString(strings.TrimSpace(trimmed)) {
			// Some renderers indent real transactions after a page break.
			return LineTransaction
		}
		return LineDetail
	}

	if txnPrefixPattern.MatchString(trimmed) {
		return LineTransaction
	}

	// Column header rows repeat on every page.
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "fecha") || strings.Contains(lower, "oper") {
		return LineNoise
	}

	return LineNoise
}

func (l *BBVALayout) SummaryStart(line string) bool {
	return strings.Contains(strings.ToLower(line), "comportamiento")
}

func (l *BBVALayout) SummaryEnd(line string) bool {
	return strings.Contains(strings.ToLower(line), "saldo promedio mínimo mensual")
}

func (l *BBVALayout) SummaryField(line string) (string, bool) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "saldo anterior"):
		return SummaryStartingBalance, true
	case strings.Contains(lower, "depósitos / abonos"), strings.Contains(lower, "depositos / abonos"):
		return SummaryDeposits, true
	case strings.Contains(lower, "retiros / cargos"):
		return SummaryCharges, true
	case strings.Contains(lower, "saldo final"):
		return SummaryFinalBalance, true
	}
	return "", false
}
