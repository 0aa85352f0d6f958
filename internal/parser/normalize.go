package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	currencyChars = regexp.MustCompile(`[$£€,\s]`)
	numericValue  = regexp.MustCompile(`\d+\.?\d{0,2}`)
	// loose numeric date triplet, interpreted month/day/year
	looseDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
)

// CleanText collapses whitespace runs to single spaces, drops
// non-printable characters and trims. Pure; empty input yields "".
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ExtractAmount converts a currency-like capture ("$1,234.56", "1,234")
// into a canonical two-decimal string ("1234.56", "1234.00"). Returns
// nil when no numeric value can be derived; never errors.
func ExtractAmount(raw string) *string {
	if raw == "" {
		return nil
	}
	cleaned := currencyChars.ReplaceAllString(raw, "")

	m := numericValue.FindString(cleaned)
	if m == "" {
		return nil
	}
	// a capture like "1,234." leaves a dangling decimal point
	m = strings.TrimSuffix(m, ".")
	d, err := decimal.NewFromString(m)
	if err != nil {
		return nil
	}
	out := d.StringFixed(2)
	return &out
}

// dateLayouts are tried top to bottom; the first layout that parses
// wins, which makes ambiguous numeric dates US-biased (MM/DD before
// DD/MM) on purpose.
var dateLayouts = []string{
	"01/02/2006",
	"01/02/06",
	"01-02-2006",
	"01-02-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
}

// ParseDate parses a captured date substring into ISO YYYY-MM-DD form.
// Returns nil when no supported format matches or the date is not a
// valid calendar date; never errors.
func ParseDate(raw string) *string {
	if raw == "" {
		return nil
	}
	raw = CleanText(raw)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			out := t.Format("2006-01-02")
			return &out
		}
	}

	// Loose fallback: pull out a numeric triplet and read it as
	// month/day/year. Two-digit years below 50 map to the 2000s.
	m := looseDate.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	month := atoi(m[1])
	day := atoi(m[2])
	year := atoi(m[3])
	if len(m[3]) == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		// time.Date normalizes out-of-range components; a mismatch
		// means the triplet was not a real calendar date
		return nil
	}
	out := t.Format("2006-01-02")
	return &out
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// titleCase cleans and title-cases an account holder capture
// ("JOHN  DOE " becomes "John Doe"). A Caser is stateful, so a fresh
// one is built per call rather than shared.
func titleCase(raw string) string {
	return cases.Title(language.English).String(CleanText(raw))
}
