package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a statement PDF and returns the text content of each
// page, one string per page with newline-separated lines. Lines whose text
// begins right of the page's left margin keep a leading indent, because the
// layout uses indentation to mark detail/continuation rows.
//
// Several extraction methods are tried in order; garbage output (custom font
// encodings, image-only pages) is rejected rather than returned, so a nil
// error always means readable text.
func ExtractText(filePath string) ([]string, error) {
	pages, err := extractWithLibrary(filePath)
	if err != nil {
		return nil, fmt.Errorf("statement text extraction failed: %w", err)
	}
	if !isReadableText(pages) {
		return nil, fmt.Errorf("no readable text could be extracted; the document may be image-based or use undecodable font encodings")
	}
	return pages, nil
}

// extractWithLibrary tries the extraction methods of ledongthuc/pdf from the
// most layout-faithful to the crudest.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	// Coordinate-based row reconstruction preserves column gaps and the
	// left-margin indentation the line classifier depends on.
	pages = extractByContent(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	// Fall back to the library's row grouping.
	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	// Last resort: per-page plain text with font maps.
	pages = extractByPagePlainText(r, numPages)
	return pages, nil
}

// indentThreshold is how far (in PDF points) a line's first glyph must sit
// right of the page's left margin to count as indented.
const indentThreshold = 8.0

// columnGap is the X distance between adjacent text items that indicates a
// column boundary rather than a word space.
const columnGap = 15.0

// extractByContent reconstructs rows from raw text items by grouping on the
// Y coordinate and sorting by X, inserting column separators on large gaps.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		leftMargin := math.MaxFloat64
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
			if t.X < leftMargin {
				leftMargin = t.X
			}
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		// PDF Y runs bottom-to-top.
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var sb strings.Builder
			if items[0].x-leftMargin > indentThreshold {
				sb.WriteString("  ")
			}
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > columnGap {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
				prevX = item.x
			}
			line := strings.TrimRight(sb.String(), " ")
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByRow uses the library's own row grouping, keeping the indentation
// marker when the row starts right of the margin.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		leftMargin := math.MaxFloat64
		for _, row := range rows {
			if len(row.Content) > 0 && row.Content[0].X < leftMargin {
				leftMargin = row.Content[0].X
			}
		}

		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line == "" {
				continue
			}
			if len(row.Content) > 0 && row.Content[0].X-leftMargin > indentThreshold {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByPagePlainText extracts per-page plain text with the page fonts.
// Layout is lost, so this only helps statements with no detail section.
func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fontNames := page.Fonts()
		fonts := make(map[string]*pdf.Font)
		for _, name := range fontNames {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// commonWords appear on virtually every statement this engine targets. Text
// containing none of them is treated as garbage from a failed decode.
var commonWords = []string{
	"saldo", "movimientos", "cuenta", "fecha", "abono", "cargo",
	"deposito", "depósito", "retiro", "comision", "comisión",
	"periodo", "página", "pagina", "total", "banco",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of readable characters (letters, digits,
// whitespace, common punctuation and currency marks) to total characters.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if unicode.IsDigit(r) || unicode.IsSpace(r) ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				strings.ContainsRune("áéíóúñÁÉÍÓÚÑ.,-/:;()'\"$%&@#!?+=*", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// isReadableText requires enough text, a high readable-character ratio and at
// least one recognizable statement word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
