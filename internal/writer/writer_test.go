package writer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cardlens/statement-parser/internal/models"
)

func sampleRecord() *models.ExtractionRecord {
	v := func(s string) *string { return &s }
	return &models.ExtractionRecord{
		CardIssuer:           "Chase",
		CardLast4:            v("1234"),
		PaymentDueDate:       v("2024-03-15"),
		TotalBalance:         v("1234.56"),
		ExtractionConfidence: models.ConfidenceLow,
		RawTextLength:        120,
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleRecord()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["card_issuer"] != "Chase" {
		t.Errorf("card_issuer: got %v", decoded["card_issuer"])
	}
	if decoded["total_balance"] != "1234.56" {
		t.Errorf("total_balance: got %v", decoded["total_balance"])
	}
	// unextracted fields serialize as explicit nulls
	if v, ok := decoded["minimum_payment"]; !ok || v != nil {
		t.Errorf("minimum_payment: got %v, want null", v)
	}
	if decoded["raw_text_length"] != float64(120) {
		t.Errorf("raw_text_length: got %v", decoded["raw_text_length"])
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	err := w.Write(&buf, []string{"jan.pdf", "feb.pdf"}, []*models.ExtractionRecord{
		sampleRecord(),
		sampleRecord(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "filename" || rows[0][1] != "card_issuer" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "jan.pdf" || rows[1][1] != "Chase" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	// null fields become empty cells
	if rows[1][6] != "" {
		t.Errorf("minimum_payment cell: got %q, want empty", rows[1][6])
	}
	if got := strings.Join(rows[2][:2], ","); got != "feb.pdf,Chase" {
		t.Errorf("unexpected second row start: %q", got)
	}
}

func TestCSVWriterLengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, []string{"only.pdf"}, nil); err == nil {
		t.Error("expected error for mismatched names and records")
	}
}
