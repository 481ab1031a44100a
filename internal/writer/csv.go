package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/astrafin/statement-engine/internal/models"
)

// CSVWriter writes classified transactions to CSV format.
type CSVWriter struct {
	// IncludeSummary prepends the statement totals as comment rows.
	IncludeSummary bool
}

// WriteToFile writes the result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the result in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.Result) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeSummary && result.Summary != nil {
		s := result.Summary
		writer.Write([]string{"# Starting Balance", s.StartingBalance.StringFixed(2)})
		writer.Write([]string{"# Deposits", s.DepositsAmount.StringFixed(2)})
		writer.Write([]string{"# Charges", s.ChargesAmount.StringFixed(2)})
		writer.Write([]string{"# Final Balance", s.FinalBalance.StringFixed(2)})
	}

	header := []string{"Date", "Settlement Date", "Description", "Movement Type", "Amount", "Amount Abs", "Needs Review"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range result.Transactions {
		tx := &result.Transactions[i]
		amount := ""
		if tx.Amount != nil {
			amount = tx.Amount.StringFixed(2)
		}
		row := []string{
			tx.Date,
			tx.DateLiquidacion,
			tx.Description,
			string(tx.MovementType),
			amount,
			tx.AmountAbs.StringFixed(2),
			fmt.Sprintf("%t", tx.NeedsReview),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
