package parser

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/astrafin/statement-engine/internal/classifier"
	"github.com/astrafin/statement-engine/internal/models"
)

// ErrNoPages means the caller handed the engine an empty document.
var ErrNoPages = errors.New("statement has no extractable pages")

// Options tune a single engine invocation.
type Options struct {
	// Layout overrides the statement layout strategy. Nil selects BBVA.
	Layout Layout
	// Rules overrides the classifier keyword sets. Nil selects defaults.
	Rules *classifier.Rules
	// Debug enables per-transaction trace logging.
	Debug bool
	// Log receives stage counters and classification traces.
	Log zerolog.Logger
}

// ParseStatement is the engine's single entry point: page text in, classified
// transactions plus reconciliation summary out. It is a pure function of the
// document text, with no I/O and no cross-invocation state, so concurrent callers
// need no coordination.
//
// Fatal conditions (unreadable input, a summary that fails its own
// arithmetic) return an error and no partial result. Everything else
// degrades into Result.Warnings: missing sections, skipped malformed lines,
// unresolved classifications.
func ParseStatement(pages []string, opts Options) (*models.Result, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	layout := opts.Layout
	if layout == nil {
		layout = &BBVALayout{}
	}

	rules := classifier.DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}

	log := opts.Log
	if !opts.Debug {
		log = log.Level(zerolog.InfoLevel)
	}

	result := &models.Result{Warnings: []string{}}

	raws, warnings := ExtractLines(pages, layout)
	result.Warnings = append(result.Warnings, warnings...)
	log.Debug().Int("raw_lines", len(raws)).Str("bank", layout.BankName()).Msg("detail section scanned")

	txs, parseWarnings := ParseLines(raws)
	result.Warnings = append(result.Warnings, parseWarnings...)
	log.Debug().Int("parsed", len(txs)).Int("skipped", len(raws)-len(txs)).Msg("transaction lines parsed")

	summary, missing, err := ExtractSummary(pages, layout)
	switch {
	case err != nil:
		// Incomplete or arithmetically invalid summaries are fatal: the
		// reconciliation pass must not run against numbers that cannot
		// be trusted.
		if len(missing) > 0 {
			log.Error().Strs("missing_fields", missing).Msg("summary extraction incomplete")
		}
		return nil, fmt.Errorf("summary extraction: %w", err)
	case summary == nil:
		result.Warnings = append(result.Warnings, "statement summary section not found")
	default:
		log.Debug().
			Str("starting_balance", summary.StartingBalance.StringFixed(2)).
			Str("final_balance", summary.FinalBalance.StringFixed(2)).
			Msg("summary extracted and validated")
	}

	cls := classifier.New(rules, log)
	result.Warnings = append(result.Warnings, cls.Classify(txs, summary)...)

	result.Transactions = txs
	result.Summary = summary
	return result, nil
}
