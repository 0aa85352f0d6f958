package parser

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"collapses spaces", "New   Balance:    $10.00", "New Balance: $10.00"},
		{"collapses newlines and tabs", "Statement\n\nDate:\t03/15/2024", "Statement Date: 03/15/2024"},
		{"trims", "  padded  ", "padded"},
		{"drops non-printables", "abc\x00\x07def", "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.expected {
				t.Errorf("CleanText(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string // "" means nil
	}{
		{"$1,234.56", "1234.56"},
		{"1234.56", "1234.56"},
		{"1,234", "1234.00"},
		{"$ 12.5", "12.50"},
		{"1,234.", "1234.00"},
		{"0", "0.00"},
		{"£99.99", "99.99"},
		{"no digits here", ""},
		{"", ""},
		{"$,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExtractAmount(tt.input)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("ExtractAmount(%q): got %q, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractAmount(%q): got nil, want %q", tt.input, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("ExtractAmount(%q): got %q, want %q", tt.input, *got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string // "" means nil
	}{
		{"03/15/2024", "2024-03-15"},
		{"3/5/24", "2024-03-05"},
		{"03-15-2024", "2024-03-15"},
		{"03-15-24", "2024-03-15"},
		{"March 15, 2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"March 15 2024", "2024-03-15"},
		{"Mar 15 2024", "2024-03-15"},
		{"25/12/2024", "2024-12-25"}, // month 25 invalid, so DD/MM wins
		{"2024-03-15", "2024-03-15"},
		{"13/45/2024", ""},
		{"02/30/2024", ""},
		{"not a date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("ParseDate(%q): got %q, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDate(%q): got nil, want %q", tt.input, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("ParseDate(%q): got %q, want %q", tt.input, *got, tt.expected)
			}
		})
	}
}

func TestParseDateUSBias(t *testing.T) {
	// 03/04/2024 could be March 4 (US) or April 3; MM/DD is tried first
	got := ParseDate("03/04/2024")
	if got == nil || *got != "2024-03-04" {
		t.Errorf("expected US-biased 2024-03-04, got %v", deref(got))
	}
}

func TestParseDateLooseFallback(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// surrounding text defeats the strict layouts, the loose triplet still parses
		{"due on 3/15/2024 thanks", "2024-03-15"},
		{"cycle 1-2-49 end", "2049-01-02"},
		{"cycle 1-2-50 end", "1950-01-02"},
		{"junk 99/99/99 junk", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("got %q, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.expected {
				t.Errorf("got %v, want %q", deref(got), tt.expected)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JOHN DOE", "John Doe"},
		{"  jane   q   smith ", "Jane Q Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := titleCase(tt.input); got != tt.expected {
				t.Errorf("titleCase(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
