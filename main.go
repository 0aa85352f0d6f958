package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardlens/statement-parser/internal/api"
	"github.com/cardlens/statement-parser/internal/config"
	"github.com/cardlens/statement-parser/internal/extractor"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/parser"
	"github.com/cardlens/statement-parser/internal/writer"
)

func main() {
	issuerFlag := flag.String("issuer", "", "Issuer hint: Chase, American Express, Citibank, Capital One, Discover (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with .json extension)")
	csvFlag := flag.Bool("csv", false, "Write all results to a single CSV instead of per-file JSON")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Credit Card Statement Parser

Extracts key fields (issuer, balances, due date, billing cycle, ...)
from credit card statement PDFs.

Usage:
  statement-parser [flags] <statement.pdf> [statement2.pdf ...]
  statement-parser -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect issuer and write statement.json
  statement-parser statement.pdf

  # Specify the issuer explicitly
  statement-parser -issuer=Chase statement.pdf

  # Batch convert to one CSV
  statement-parser -csv -output=statements.csv jan.pdf feb.pdf mar.pdf

  # Run the HTTP API
  statement-parser -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-parser v%s\n", api.Version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	engine, err := parser.New(logger)
	if err != nil {
		logger.Error("engine initialization failed", "error", err)
		os.Exit(1)
	}

	if *serveFlag {
		serve(engine, logger)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *issuerFlag != "" && !knownIssuer(*issuerFlag) {
		fmt.Fprintf(os.Stderr, "Unknown issuer %q. Supported: %s\n", *issuerFlag, issuerList())
		os.Exit(1)
	}

	if *csvFlag {
		if err := processBatchCSV(engine, flag.Args(), *issuerFlag, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, *issuerFlag, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(engine *parser.Engine, logger *slog.Logger) {
	cfg := config.Load(logger)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadBytes,
	})
	api.NewHandler(cfg, engine, logger).Register(app)

	logger.Info("statement parser API listening",
		"addr", cfg.Addr(),
		"issuers", issuerList(),
	)
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func processFile(engine *parser.Engine, inputPath, issuerHint, outputPath string) error {
	rec, err := parseOne(engine, inputPath, issuerHint)
	if err != nil {
		return err
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
	}

	w := &writer.JSONWriter{}
	if err := w.WriteToFile(outPath, rec); err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	fmt.Printf("  Issuer: %s\n", rec.CardIssuer)
	fmt.Printf("  Confidence: %s\n", rec.ExtractionConfidence)
	fmt.Printf("  Output: %s\n", outPath)
	return nil
}

func processBatchCSV(engine *parser.Engine, inputs []string, issuerHint, outputPath string) error {
	if outputPath == "" {
		outputPath = "statements.csv"
	}

	var names []string
	var recs []*models.ExtractionRecord
	for _, inputPath := range inputs {
		rec, err := parseOne(engine, inputPath, issuerHint)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", inputPath, err)
			continue
		}
		names = append(names, filepath.Base(inputPath))
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no statements could be parsed")
	}

	w := &writer.CSVWriter{IncludeHeader: true}
	if err := w.WriteToFile(outputPath, names, recs); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("Wrote %d record(s) to %s\n", len(recs), outputPath)
	return nil
}

func parseOne(engine *parser.Engine, inputPath, issuerHint string) (*models.ExtractionRecord, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return nil, fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := extractor.ExtractTextCombined(inputPath)
	if err != nil {
		return nil, fmt.Errorf("PDF extraction failed: %w", err)
	}

	rec, err := engine.Extract(text, issuerHint)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func knownIssuer(name string) bool {
	for _, issuer := range models.SupportedIssuers() {
		if string(issuer) == name {
			return true
		}
	}
	return false
}

func issuerList() string {
	issuers := models.SupportedIssuers()
	names := make([]string, len(issuers))
	for i, issuer := range issuers {
		names[i] = string(issuer)
	}
	return strings.Join(names, ", ")
}
