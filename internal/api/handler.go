// Package api exposes the statement parser over HTTP: single and batch
// PDF upload endpoints plus health, issuer listing and metrics.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardlens/statement-parser/internal/config"
	"github.com/cardlens/statement-parser/internal/extractor"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/parser"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// ParseResponse is the JSON envelope for single-statement parses.
type ParseResponse struct {
	Status   string                   `json:"status"`
	Message  string                   `json:"message,omitempty"`
	Data     *models.ExtractionRecord `json:"data,omitempty"`
	Filename string                   `json:"filename,omitempty"`
	ParsedAt string                   `json:"parsed_at,omitempty"`
}

// BatchResult is one statement's outcome inside a batch response.
type BatchResult struct {
	Filename string                   `json:"filename"`
	Status   string                   `json:"status"`
	Data     *models.ExtractionRecord `json:"data,omitempty"`
}

// BatchError reports a single failed file inside a batch response.
type BatchError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchResponse is the JSON envelope for batch parses.
type BatchResponse struct {
	Status      string        `json:"status"`
	Message     string        `json:"message,omitempty"`
	ParsedCount int           `json:"parsed_count"`
	ErrorCount  int           `json:"error_count"`
	Results     []BatchResult `json:"results"`
	Errors      []BatchError  `json:"errors,omitempty"`
	ParsedAt    string        `json:"parsed_at,omitempty"`
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	cfg    *config.Config
	engine *parser.Engine
	log    *slog.Logger
}

// NewHandler wires a handler around the extraction engine.
func NewHandler(cfg *config.Config, engine *parser.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, engine: engine, log: logger}
}

// Register sets up the routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
	app.Get("/api/issuers", h.HandleIssuers)
	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/batch-parse", h.HandleBatchParse)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleIssuers lists the issuers with dedicated pattern sets.
func (h *Handler) HandleIssuers(c *fiber.Ctx) error {
	issuers := models.SupportedIssuers()
	names := make([]string, len(issuers))
	for i, issuer := range issuers {
		names[i] = string(issuer)
	}
	return c.JSON(fiber.Map{
		"status":            "success",
		"supported_issuers": names,
		"count":             len(names),
	})
}

// HandleParse accepts a multipart PDF upload (field "file"), an
// optional "issuer" hint and an optional "extractedText" override for
// clients that extract text themselves, and returns the extraction
// record.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	start := time.Now()

	file, err := c.FormFile("file")
	if err != nil {
		return h.parseError(c, fiber.StatusBadRequest, "No file provided. Please upload a PDF file.")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return h.parseError(c, fiber.StatusBadRequest, "Invalid file type. Only PDF files are allowed.")
	}
	if file.Size > int64(h.cfg.MaxUploadBytes) {
		return h.parseError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Limit is %d bytes.", h.cfg.MaxUploadBytes))
	}

	text := c.FormValue("extractedText")
	if text == "" {
		text, err = h.extractUpload(c, file)
		if err != nil {
			h.log.Warn("PDF text extraction failed", "filename", file.Filename, "error", err)
			parseRequests.WithLabelValues("extract_error").Inc()
			return h.parseError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("PDF extraction failed: %v", err))
		}
	}

	rec, err := h.engine.Extract(text, c.FormValue("issuer"))
	if err != nil {
		return h.extractionError(c, file.Filename, err)
	}

	parseRequests.WithLabelValues("success").Inc()
	parseConfidence.WithLabelValues(string(rec.ExtractionConfidence)).Inc()
	parseDuration.Observe(time.Since(start).Seconds())

	return c.JSON(ParseResponse{
		Status:   "success",
		Data:     rec,
		Filename: file.Filename,
		ParsedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleBatchParse accepts multiple PDFs under the "files" field and
// parses each independently, accumulating per-file results and errors.
func (h *Handler) HandleBatchParse(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.parseError(c, fiber.StatusBadRequest, "No files provided. Please upload PDF files.")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return h.parseError(c, fiber.StatusBadRequest, "No files selected.")
	}

	results := []BatchResult{}
	batchErrors := []BatchError{}

	for _, file := range files {
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
			batchErrors = append(batchErrors, BatchError{Filename: file.Filename, Error: "Invalid file type"})
			continue
		}
		if file.Size > int64(h.cfg.MaxUploadBytes) {
			batchErrors = append(batchErrors, BatchError{Filename: file.Filename, Error: "File too large"})
			continue
		}

		text, err := h.extractUpload(c, file)
		if err != nil {
			batchErrors = append(batchErrors, BatchError{Filename: file.Filename, Error: err.Error()})
			parseRequests.WithLabelValues("extract_error").Inc()
			continue
		}

		rec, err := h.engine.Extract(text, "")
		if err != nil {
			batchErrors = append(batchErrors, BatchError{Filename: file.Filename, Error: err.Error()})
			parseRequests.WithLabelValues(statusLabel(err)).Inc()
			continue
		}

		parseRequests.WithLabelValues("success").Inc()
		parseConfidence.WithLabelValues(string(rec.ExtractionConfidence)).Inc()
		results = append(results, BatchResult{Filename: file.Filename, Status: "success", Data: rec})
	}

	return c.JSON(BatchResponse{
		Status:      "success",
		ParsedCount: len(results),
		ErrorCount:  len(batchErrors),
		Results:     results,
		Errors:      batchErrors,
		ParsedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// extractUpload saves an uploaded PDF to a uniquely named temp file,
// extracts its text, and removes the file when configured to do so.
func (h *Handler) extractUpload(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	path := filepath.Join(h.cfg.UploadDir, uuid.NewString()+".pdf")
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	if h.cfg.DeleteUploads {
		defer os.Remove(path)
	}

	return extractor.ExtractTextCombined(path)
}

func (h *Handler) extractionError(c *fiber.Ctx, filename string, err error) error {
	var emptyErr *parser.EmptyDocumentError
	if errors.As(err, &emptyErr) {
		parseRequests.WithLabelValues("empty_document").Inc()
		return h.parseError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	h.log.Error("statement extraction failed", "filename", filename, "error", err)
	parseRequests.WithLabelValues("extraction_failed").Inc()
	return h.parseError(c, fiber.StatusInternalServerError,
		fmt.Sprintf("Error processing statement: %v", err))
}

func statusLabel(err error) string {
	var emptyErr *parser.EmptyDocumentError
	if errors.As(err, &emptyErr) {
		return "empty_document"
	}
	return "extraction_failed"
}

func (h *Handler) parseError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Status:  "error",
		Message: msg,
	})
}
