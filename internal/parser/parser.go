package parser

import (
	"fmt"
	"strings"

	"github.com/astrafin/statement-engine/internal/models"
)

// LineKind is what the layout's line classifier decided about a single line
// inside the transaction-detail section.
type LineKind int

const (
	// LineNoise is a header, footer or page-break artifact to discard.
	LineNoise LineKind = iota
	// LineTransaction starts a new transaction.
	LineTransaction
	// LineDetail is an indented continuation line belonging to the
	// previous transaction (references, counterparty names, RFC rows).
	LineDetail
)

// Layout is the pluggable section-locator + line-classifier strategy for one
// bank's statement rendering. The pipeline itself is layout-agnostic; adding
// a new bank means implementing Layout, not touching the pipeline.
type Layout interface {
	// BankName returns the human-readable bank name.
	BankName() string

	// DetailStart/DetailEnd recognize the anchors that bound the
	// transaction-detail section.
	DetailStart(line string) bool
	DetailEnd(line string) bool

	// Classify decides what a line inside the detail section is.
	Classify(line string) LineKind

	// SummaryStart/SummaryEnd recognize the anchors that bound the
	// period-summary block.
	SummaryStart(line string) bool
	SummaryEnd(line string) bool

	// SummaryField names the summary quantity a line carries
	// ("starting_balance", "deposits", "charges", "final_balance"),
	// or ok=false if the line carries none.
	SummaryField(line string) (name string, ok bool)
}

// New returns the layout for the given bank type.
func New(bankType models.BankType) (Layout, error) {
	switch bankType {
	case models.BankBBVA:
		return &BBVALayout{}, nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bankType)
	}
}

// AutoDetect tries to identify the bank from the statement text content.
func AutoDetect(pages []string) (models.BankType, error) {
	combined := strings.ToLower(strings.Join(pages, "\n"))

	if containsAny(combined, []string{"bbva", "bancomer", "bbva.mx"}) {
		return models.BankBBVA, nil
	}

	return "", fmt.Errorf("could not auto-detect bank from statement content")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
