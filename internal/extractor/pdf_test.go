package extractor

import (
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	readable := []string{"New Balance: $1,234.56 Payment Due Date: 03/15/2024"}
	if q := textQuality(readable); q < 0.95 {
		t.Errorf("readable text scored %f, want >= 0.95", q)
	}

	garbage := []string{"��������"}
	if q := textQuality(garbage); q > 0.3 {
		t.Errorf("garbage text scored %f, want <= 0.3", q)
	}

	if q := textQuality(nil); q != 0 {
		t.Errorf("empty input scored %f, want 0", q)
	}
}

func TestIsReadableText(t *testing.T) {
	statement := []string{
		"Chase Credit Card Statement",
		"New Balance: $1,234.56",
		"Minimum Payment Due: $35.00",
		"Payment Due Date: 03/15/2024",
	}
	if !isReadableText(statement) {
		t.Error("expected statement text to be readable")
	}

	if isReadableText([]string{"short"}) {
		t.Error("expected short text to be rejected")
	}

	// long and ASCII-clean but with no statement vocabulary
	noise := []string{strings.Repeat("zzz qqq xxx ", 20)}
	if isReadableText(noise) {
		t.Error("expected text without statement vocabulary to be rejected")
	}
}

func TestContainsCommonWords(t *testing.T) {
	if !containsCommonWords([]string{"Your MINIMUM payment is due"}) {
		t.Error("expected case-insensitive vocabulary match")
	}
	if containsCommonWords([]string{"lorem ipsum dolor sit"}) {
		t.Error("expected no vocabulary match")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
