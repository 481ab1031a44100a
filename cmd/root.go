package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/astrafin/statement-engine/internal/config"
	"github.com/astrafin/statement-engine/internal/logger"
)

var (
	cfgName string
	debug   bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "statement-engine",
	Short: "BBVA statement parsing and transaction classification engine",
	Long: `statement-engine converts BBVA debit statement PDFs into structured,
classified financial transactions plus a reconciliation summary.

Transactions the engine cannot classify with confidence are reported as
UNKNOWN for manual review rather than guessed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgName)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if debug {
			level = "debug"
		}
		log = logger.New(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgName, "config", "config", "name of the config file to load (without extension)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose per-transaction trace output")
}
