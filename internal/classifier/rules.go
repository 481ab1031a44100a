package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AmbiguousRule handles description phrases that imply neither direction on
// their own. When the phrase matches, the transaction's detail line decides:
// a self-transfer marker (or the account holder's own name) means the money
// stayed with the holder, so the movement is an ABONO; anything else is a
// payment out.
type AmbiguousRule struct {
	Phrase              string   `yaml:"phrase"`
	SelfTransferMarkers []string `yaml:"self_transfer_markers"`
}

// Rules are the keyword sets driving the classifier's Pass B. They are a
// bank-specific tuning parameter, not a structural one, so they load from
// YAML and callers may swap them wholesale.
type Rules struct {
	// IncomeKeywords imply incoming funds when found in a description.
	IncomeKeywords []string `yaml:"income_keywords"`
	// ExpenseKeywords imply outgoing funds.
	ExpenseKeywords []string `yaml:"expense_keywords"`
	// Ambiguous phrases defer to the transaction's detail line.
	Ambiguous []AmbiguousRule `yaml:"ambiguous"`
	// AccountHolder, when set, counts as a self-transfer marker for
	// ambiguous phrases (a transfer to an account naming the holder).
	AccountHolder string `yaml:"account_holder,omitempty"`
}

// DefaultRules returns the keyword sets curated for BBVA debit statements.
func DefaultRules() Rules {
	return Rules{
		IncomeKeywords: []string{
			"SPEI RECIBIDO",
			"DEPOSITO",
			"ABONO",
			"REEMBOLSO",
			"DEVOLUC",
			"INTERESES",
			"BECAS",
			"BECA",
		},
		ExpenseKeywords: []string{
			"SPEI ENVIADO",
			"RETIRO CAJERO",
			"RETIRO CAJERO AUTOMATICO",
			"PAGO TARJETA DE CREDITO",
			"COMISION",
			"IVA",
			"EFECTIVO SEGURO",
		},
		Ambiguous: []AmbiguousRule{
			{
				Phrase: "PAGO CUENTA DE TERCERO",
				SelfTransferMarkers: []string{
					"CUENTA PROPIA",
					"TRASPASO ENTRE CUENTAS",
				},
			},
		},
	}
}

// LoadRules reads rule sets from a YAML file. Fields left empty in the file
// fall back to the defaults, so a rules file may override just one list.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return rules, fmt.Errorf("parsing rules file: %w", err)
	}

	if len(loaded.IncomeKeywords) > 0 {
		rules.IncomeKeywords = loaded.IncomeKeywords
	}
	if len(loaded.ExpenseKeywords) > 0 {
		rules.ExpenseKeywords = loaded.ExpenseKeywords
	}
	if len(loaded.Ambiguous) > 0 {
		rules.Ambiguous = loaded.Ambiguous
	}
	if loaded.AccountHolder != "" {
		rules.AccountHolder = loaded.AccountHolder
	}

	return rules, nil
}
