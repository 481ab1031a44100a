package writer

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/astrafin/statement-engine/internal/models"
)

func testResult() *models.Result {
	abono := decimal.RequireFromString("1500.00")
	result := &models.Result{
		Transactions: []models.ParsedTransaction{
			{
				Date:            "04/DIC",
				DateLiquidacion: "04/DIC",
				Description:     "SPEI RECIBIDO BANAMEX",
				AmountAbs:       abono,
			},
			{
				Date:            "05/DIC",
				DateLiquidacion: "05/DIC",
				Description:     "TRANSFERENCIA INTERBANCARIA",
				AmountAbs:       decimal.RequireFromString("500.00"),
			},
		},
		Summary: &models.StatementSummary{
			StartingBalance: decimal.RequireFromString("10000.00"),
			FinalBalance:    decimal.RequireFromString("11000.00"),
			DepositsAmount:  decimal.RequireFromString("1500.00"),
			ChargesAmount:   decimal.RequireFromString("500.00"),
		},
	}
	result.Transactions[0].Resolve(models.MovementAbono)
	result.Transactions[1].Resolve(models.MovementUnknown)
	return result
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}

	if err := w.Write(&buf, testResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Date" || records[0][3] != "Movement Type" {
		t.Errorf("unexpected header %v", records[0])
	}

	abono := records[1]
	if abono[3] != "ABONO" || abono[4] != "1500.00" || abono[6] != "false" {
		t.Errorf("unexpected abono row %v", abono)
	}

	unknown := records[2]
	if unknown[3] != "UNKNOWN" || unknown[4] != "" || unknown[6] != "true" {
		t.Errorf("unknown row must have an empty amount and review flag, got %v", unknown)
	}
}

func TestWriteIncludesSummary(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeSummary: true}

	if err := w.Write(&buf, testResult()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 7 {
		t.Fatalf("expected 4 summary rows + header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "# Starting Balance" || records[0][1] != "10000.00" {
		t.Errorf("unexpected first summary row %v", records[0])
	}
	if records[3][0] != "# Final Balance" || records[3][1] != "11000.00" {
		t.Errorf("unexpected final summary row %v", records[3])
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}

	if err := w.WriteToFile(path, testResult()); err != nil {
		t.Fatalf("WriteToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Contains(data, []byte("SPEI RECIBIDO BANAMEX")) {
		t.Error("output file should contain the transaction description")
	}
}
