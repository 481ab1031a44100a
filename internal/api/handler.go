package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/astrafin/statement-engine/internal/classifier"
	"github.com/astrafin/statement-engine/internal/extractor"
	"github.com/astrafin/statement-engine/internal/models"
	"github.com/astrafin/statement-engine/internal/parser"
)

// ParseResponse is the JSON body returned by POST /api/parse.
type ParseResponse struct {
	Success      bool                        `json:"success"`
	Error        string                      `json:"error,omitempty"`
	Bank         string                      `json:"bank,omitempty"`
	Transactions []models.ParsedTransaction  `json:"transactions"`
	Summary      *models.StatementSummary    `json:"summary"`
	Warnings     []string                    `json:"warnings"`
	Counts       map[models.MovementType]int `json:"counts,omitempty"`
}

// Handler holds the HTTP handlers for the statement API.
type Handler struct {
	Rules       classifier.Rules
	MaxUploadMB int
	Log         zerolog.Logger
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/parse", h.Parse)
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// Parse accepts a multipart statement PDF under the form field "file", runs
// the engine on it, and returns the classified transactions. The uploaded
// file only ever lives in a temp location and is removed before the response
// goes out; error messages carry failure kinds, never filesystem paths.
func (h *Handler) Parse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "only PDF files are supported")
	}
	if fileHeader.Size > int64(h.MaxUploadMB)<<20 {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("file too large; maximum size is %dMB", h.MaxUploadMB))
	}

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to stage uploaded file")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to stage uploaded file")
	}

	pages, err := extractor.ExtractText(tmpPath)
	if err != nil {
		h.Log.Warn().Err(err).Msg("statement extraction failed")
		return writeError(c, fiber.StatusUnprocessableEntity, "statement text extraction failed")
	}

	debug := c.FormValue("debug") == "true"

	result, err := parser.ParseStatement(pages, parser.Options{
		Rules: &h.Rules,
		Debug: debug,
		Log:   h.Log,
	})
	if err != nil {
		h.Log.Warn().Err(err).Msg("statement parsing failed")
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	counts := map[models.MovementType]int{}
	for i := range result.Transactions {
		counts[result.Transactions[i].MovementType]++
	}

	// Nil marshals to JSON null; the API promises arrays.
	txs := result.Transactions
	if txs == nil {
		txs = []models.ParsedTransaction{}
	}

	return c.JSON(ParseResponse{
		Success:      true,
		Bank:         string(models.BankBBVA),
		Transactions: txs,
		Summary:      result.Summary,
		Warnings:     result.Warnings,
		Counts:       counts,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.ParsedTransaction{},
		Warnings:     []string{},
	})
}
