package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrafin/statement-engine/internal/classifier"
	"github.com/astrafin/statement-engine/internal/extractor"
	"github.com/astrafin/statement-engine/internal/models"
	"github.com/astrafin/statement-engine/internal/parser"
	"github.com/astrafin/statement-engine/internal/writer"
)

var (
	outputPath     string
	includeSummary bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [statement.pdf]",
	Short: "Parse a statement PDF and classify its transactions",
	Long: `Parse extracts the transaction detail and period summary from a statement
PDF, classifies every transaction as ABONO, CARGO or UNKNOWN, and prints the
result. With --output the classified transactions are written as CSV.

When no path is given, the configured sample statement is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := cfg.Engine.SampleStatement
		if len(args) > 0 {
			inputPath = args[0]
		}

		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", inputPath)
		}
		if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
			return fmt.Errorf("expected .pdf file, got %q", ext)
		}

		rules, err := loadRules()
		if err != nil {
			return err
		}

		pages, err := extractor.ExtractText(inputPath)
		if err != nil {
			return err
		}
		log.Info().Int("pages", len(pages)).Msg("statement text extracted")

		result, err := parser.ParseStatement(pages, parser.Options{
			Rules: &rules,
			Debug: debug,
			Log:   log,
		})
		if err != nil {
			return err
		}

		printResult(result)

		if outputPath != "" {
			w := &writer.CSVWriter{IncludeSummary: includeSummary}
			if err := w.WriteToFile(outputPath, result); err != nil {
				return err
			}
			fmt.Printf("Output: %s\n", outputPath)
		}

		return nil
	},
}

func printResult(result *models.Result) {
	counts := map[models.MovementType]int{}
	for _, tx := range result.Transactions {
		counts[tx.MovementType]++
	}

	fmt.Printf("Transactions: %d (abono %d, cargo %d, unknown %d)\n",
		len(result.Transactions),
		counts[models.MovementAbono],
		counts[models.MovementCargo],
		counts[models.MovementUnknown])

	if s := result.Summary; s != nil {
		fmt.Printf("Period: saldo anterior %s, depósitos %s, retiros %s, saldo final %s\n",
			s.StartingBalance.StringFixed(2),
			s.DepositsAmount.StringFixed(2),
			s.ChargesAmount.StringFixed(2),
			s.FinalBalance.StringFixed(2))
	}

	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

func loadRules() (classifier.Rules, error) {
	if cfg.Engine.RulesPath == "" {
		return classifier.DefaultRules(), nil
	}
	return classifier.LoadRules(cfg.Engine.RulesPath)
}

func init() {
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write classified transactions as CSV to this path")
	parseCmd.Flags().BoolVar(&includeSummary, "summary-header", true, "include statement totals as CSV comment rows")
	rootCmd.AddCommand(parseCmd)
}
