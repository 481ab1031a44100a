package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/astrafin/statement-engine/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement parsing HTTP API",
	Long: `Serve starts an HTTP server exposing the engine over two routes:

  GET  /api/health   liveness probe
  POST /api/parse    multipart PDF upload, returns classified transactions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRules()
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			BodyLimit:    cfg.Server.MaxUploadMB * 1024 * 1024,
		})

		h := &api.Handler{
			Rules:       rules,
			MaxUploadMB: cfg.Server.MaxUploadMB,
			Log:         log,
		}
		h.Register(app)

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("statement API listening")
		return app.Listen(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
