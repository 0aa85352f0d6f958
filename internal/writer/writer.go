// Package writer serializes extraction records for the CLI: one JSON
// document per statement, or CSV rows for batch runs.
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cardlens/statement-parser/internal/models"
)

// JSONWriter writes a single extraction record as indented JSON.
type JSONWriter struct{}

// WriteToFile writes the record as JSON to the given path.
func (w *JSONWriter) WriteToFile(path string, rec *models.ExtractionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rec)
}

// Write writes the record as indented JSON to the given writer.
func (w *JSONWriter) Write(out io.Writer, rec *models.ExtractionRecord) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// csvColumns defines the CSV column order, one column per target field
// plus the derived confidence and length columns.
var csvColumns = []string{
	"filename",
	string(models.FieldCardIssuer),
	string(models.FieldCardLast4),
	string(models.FieldBillingCycle),
	string(models.FieldPaymentDueDate),
	string(models.FieldTotalBalance),
	string(models.FieldMinimumPayment),
	string(models.FieldStatementDate),
	string(models.FieldAccountHolder),
	string(models.FieldCreditLimit),
	string(models.FieldAvailableCredit),
	"extraction_confidence",
	"raw_text_length",
}

// CSVWriter writes extraction records as CSV rows, one per statement.
// Null fields become empty cells.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the named records as CSV to the given path.
func (w *CSVWriter) WriteToFile(path string, names []string, recs []*models.ExtractionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, names, recs)
}

// Write writes the named records in CSV format to the given writer.
// names and recs must be the same length.
func (w *CSVWriter) Write(out io.Writer, names []string, recs []*models.ExtractionRecord) error {
	if len(names) != len(recs) {
		return fmt.Errorf("got %d names for %d records", len(names), len(recs))
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if err := writer.Write(csvColumns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for i, rec := range recs {
		row := []string{
			names[i],
			rec.CardIssuer,
			cell(rec.CardLast4),
			cell(rec.BillingCycle),
			cell(rec.PaymentDueDate),
			cell(rec.TotalBalance),
			cell(rec.MinimumPayment),
			cell(rec.StatementDate),
			cell(rec.AccountHolder),
			cell(rec.CreditLimit),
			cell(rec.AvailableCredit),
			string(rec.ExtractionConfidence),
			fmt.Sprintf("%d", rec.RawTextLength),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func cell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
