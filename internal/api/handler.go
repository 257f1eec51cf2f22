// Package api exposes the extraction pipeline over HTTP for the review UI.
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paisaledger/statement-extractor/internal/config"
	"github.com/paisaledger/statement-extractor/internal/extractor"
	"github.com/paisaledger/statement-extractor/internal/models"
	"github.com/paisaledger/statement-extractor/internal/parser"
	"github.com/paisaledger/statement-extractor/internal/writer"
)

// Version reported by the health endpoint and extract responses.
const Version = "1.0.0"

// ExtractResponse is the JSON response from POST /api/extract.
type ExtractResponse struct {
	Success         bool                      `json:"success"`
	Error           string                    `json:"error,omitempty"`
	Source          models.Source             `json:"source,omitempty"`
	Bank            string                    `json:"bank,omitempty"`
	AccountNumber   string                    `json:"accountNumber,omitempty"`
	StatementPeriod string                    `json:"statementPeriod,omitempty"`
	Drafts          []models.DraftTransaction `json:"drafts"`
	Screenshot      *models.ScreenshotFields  `json:"screenshot,omitempty"`
	Skipped         []models.SkippedRow       `json:"skipped,omitempty"`
	Trace           []models.LineTrace        `json:"trace,omitempty"`
	CSV             string                    `json:"csv,omitempty"`
	TotalDebit      decimal.Decimal           `json:"totalDebit"`
	TotalCredit     decimal.Decimal           `json:"totalCredit"`
	Count           int                       `json:"count"`
	RawText         string                    `json:"rawText,omitempty"`
	Version         string                    `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the extraction API.
type Handler struct {
	cfg *config.Config
	log zerolog.Logger
}

func New(cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

// Register sets up the API routes and, when configured, SPA static serving.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.handleHealth)
	app.Post("/api/extract", h.handleExtract)

	if h.cfg.StaticDir != "" {
		app.Static("/", h.cfg.StaticDir)
		// SPA routes fall back to index.html.
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(h.cfg.StaticDir, "index.html"))
		})
	}
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

func (h *Handler) handleExtract(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	log := h.log.With().Str("file", file.Filename).Str("ext", ext).Logger()

	switch ext {
	case ".pdf":
		return h.extractPDF(c, log)
	case ".csv":
		return h.extractCSV(c, log)
	case ".png", ".jpg", ".jpeg":
		return h.extractScreenshot(c, log)
	default:
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unsupported file type %q. Upload a .pdf, .csv, .png or .jpg file.", ext))
	}
}

func (h *Handler) extractPDF(c *fiber.Ctx, log zerolog.Logger) error {
	var pages []string

	// The review UI may send pre-extracted text from client-side pdf.js.
	if extracted := c.FormValue("extractedText"); extracted != "" {
		for _, page := range strings.Split(extracted, "\n---PAGE_BREAK---\n") {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
	}

	if len(pages) == 0 {
		path, cleanup, err := h.saveUpload(c, "statement-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		defer cleanup()

		pages, err = extractor.ExtractText(path)
		if err != nil {
			// Text-layer extraction failed entirely; the statement may be a
			// scan. OCR is slower but the only option left.
			log.Debug().Err(err).Msg("text extraction failed, trying OCR")
			pages, err = extractor.ExtractTextOCR(path, extractor.OCROptions{Language: h.cfg.OCRLanguage})
			if err != nil {
				return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
			}
		}
	}

	result := parser.ParseStatement(pages)
	drafts := make([]models.DraftTransaction, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		drafts = append(drafts, txn.DraftTransaction)
	}
	log.Info().Int("count", len(drafts)).Str("bank", result.Bank).Msg("statement extracted")

	resp := newResponse(models.SourcePDF, drafts)
	resp.Bank = result.Bank
	resp.AccountNumber = result.AccountNumber
	resp.StatementPeriod = result.StatementPeriod
	resp.Trace = result.Trace
	resp.RawText = strings.Join(pages, "\n--- PAGE BREAK ---\n")
	resp.CSV = renderCSV(result.Bank, result.AccountNumber, result.StatementPeriod, drafts)
	return c.JSON(resp)
}

func (h *Handler) extractCSV(c *fiber.Ctx, log zerolog.Logger) error {
	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded.")
	}
	f, err := file.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to open uploaded file.")
	}
	defer f.Close()

	result, err := parser.MapCSV(f)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("CSV parsing failed: %v", err))
	}
	log.Info().Int("count", len(result.Drafts)).Int("skipped", len(result.Skipped)).Msg("csv extracted")

	resp := newResponse(models.SourceCSV, result.Drafts)
	resp.Skipped = result.Skipped
	return c.JSON(resp)
}

func (h *Handler) extractScreenshot(c *fiber.Ctx, log zerolog.Logger) error {
	path, cleanup, err := h.saveUpload(c, "screenshot-*")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	defer cleanup()

	text, err := extractor.ExtractImageText(path, extractor.OCROptions{
		Language:    h.cfg.OCRLanguage,
		PageSegMode: extractor.DefaultScreenshotOptions().PageSegMode,
	})
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("OCR failed: %v", err))
	}

	fields := parser.ExtractScreenshotFields(text)
	log.Info().Bool("amountFound", fields.Amount != nil).Msg("screenshot extracted")

	resp := newResponse(models.SourceOCR, nil)
	resp.Screenshot = &fields
	resp.RawText = text
	return c.JSON(resp)
}

// saveUpload stores the multipart file in a temp location for the extractors
// that need a file path.
func (h *Handler) saveUpload(c *fiber.Ctx, pattern string) (string, func(), error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded")
	}
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file")
	}
	tmp.Close()
	if err := c.SaveFile(file, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to save uploaded file")
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func newResponse(source models.Source, drafts []models.DraftTransaction) ExtractResponse {
	// nil marshals to JSON null, not [].
	if drafts == nil {
		drafts = []models.DraftTransaction{}
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, d := range drafts {
		if d.Direction == models.DirectionExpense {
			totalDebit = totalDebit.Add(d.Amount)
		} else {
			totalCredit = totalCredit.Add(d.Amount)
		}
	}

	return ExtractResponse{
		Success:     true,
		Source:      source,
		Drafts:      drafts,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Count:       len(drafts),
		Version:     Version,
	}
}

func renderCSV(bank, account, period string, drafts []models.DraftTransaction) string {
	var b strings.Builder
	w := &writer.ReviewWriter{
		IncludeMetadata: true,
		Bank:            bank,
		AccountNumber:   account,
		StatementPeriod: period,
	}
	if err := w.Write(&b, drafts); err != nil {
		return ""
	}
	return b.String()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success: false,
		Error:   msg,
		Drafts:  []models.DraftTransaction{},
	})
}
