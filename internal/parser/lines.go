package parser

import (
	"strings"

	"github.com/astrafin/statement-engine/internal/models"
)

// ExtractLines scans the statement pages for the transaction-detail section
// and returns the raw transaction lines in document order, each carrying the
// indented detail lines that follow it.
//
// A statement without a detail section is valid (summary-only exports), so a
// missing anchor yields an empty list and a warning rather than an error.
func ExtractLines(pages []string, layout Layout) ([]models.RawLine, []string) {
	var raws []models.RawLine
	var warnings []string

	sectionSeen := false
	inside := false

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimRight(line, " \t")

			if layout.DetailStart(line) {
				sectionSeen = true
				inside = true
				continue
			}
			if inside && layout.DetailEnd(line) {
				inside = false
				continue
			}
			if !inside {
				continue
			}

			switch layout.Classify(line) {
			case LineTransaction:
				raws = append(raws, models.RawLine{Text: strings.TrimSpace(line)})
			case LineDetail:
				// Detail lines before the first transaction of the
				// section are stray header artifacts; drop them.
				if len(raws) > 0 {
					last := &raws[len(raws)-1]
					last.Detail = append(last.Detail, strings.TrimSpace(line))
				}
			case LineNoise:
				// skip
			}
		}
	}

	if !sectionSeen {
		warnings = append(warnings, "transaction detail section not found")
	}

	return raws, warnings
}
