// Package parser implements the field-extraction engine for credit card
// statements: an ordered, fallback-driven pattern pipeline that turns
// issuer-varying statement text into normalized typed fields, plus a
// completeness-based confidence score over the result.
package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cardlens/statement-parser/internal/models"
)

// minTextLength is the normalized length below which a document is
// treated as unreadable or empty.
const minTextLength = 50

var digitRuns = regexp.MustCompile(`\d+`)

// Engine extracts statement fields from raw text. It holds only the
// compiled read-only catalog, so a single Engine is safe for concurrent
// use and every call with the same input yields the same record.
type Engine struct {
	catalog *Catalog
	log     *slog.Logger
}

// New builds an Engine with a freshly compiled pattern catalog.
func New(logger *slog.Logger) (*Engine, error) {
	catalog, err := CompileCatalog()
	if err != nil {
		return nil, fmt.Errorf("compiling pattern catalog: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{catalog: catalog, log: logger}, nil
}

// Extract parses raw statement text and returns the extraction record.
// issuerHint, when non-empty, is trusted verbatim and skips issuer
// classification; an unrecognized hint is still recorded as card_issuer
// but resolves to the generic pattern set only.
//
// Errors are *EmptyDocumentError for text under the readable minimum
// and *ExtractionFailedError for unexpected internal faults. A missing
// field is not an error; it is null in the record.
func (e *Engine) Extract(text, issuerHint string) (rec *models.ExtractionRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = &ExtractionFailedError{Cause: fmt.Errorf("%v", r)}
		}
	}()

	norm := CleanText(text)
	length := utf8.RuneCountInString(norm)
	if length < minTextLength {
		return nil, &EmptyDocumentError{Length: length}
	}

	var issuer models.Issuer
	if issuerHint != "" {
		issuer = models.Issuer(issuerHint)
	} else {
		issuer = Classify(norm)
	}

	rec = &models.ExtractionRecord{
		CardIssuer:    string(issuer),
		RawTextLength: length,
	}
	for _, spec := range fieldSpecs {
		setField(rec, spec.field, e.extractField(norm, issuer, spec))
	}
	rec.ExtractionConfidence = scoreConfidence(rec)

	e.log.Debug("statement extracted",
		"issuer", issuer,
		"confidence", rec.ExtractionConfidence,
		"text_length", length,
	)
	return rec, nil
}

// extractField walks the issuer-specific then generic patterns for one
// field and post-processes the first match. Strict first-match policy:
// precision comes from ordering specific before generic, not from
// comparing candidates.
func (e *Engine) extractField(text string, issuer models.Issuer, spec fieldSpec) *string {
	for _, re := range e.catalog.Candidates(issuer, spec.field) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := m[0]
		if re.NumSubexp() >= 1 {
			raw = m[1]
		}

		switch spec.post {
		case postLast4:
			return lastFourDigits(raw)
		case postAmount:
			return ExtractAmount(raw)
		case postDate:
			return ParseDate(raw)
		case postDateRange:
			if re.NumSubexp() >= 2 {
				return joinDateRange(m[1], m[2])
			}
			// single-group range patterns fall back to the raw match
			return &m[0]
		case postName:
			name := titleCase(raw)
			return &name
		}
	}
	return nil
}

// lastFourDigits concatenates every digit run in the capture and keeps
// the last four ("ending in ****1234" yields "1234"). Fewer than four
// digits in total yields nil.
func lastFourDigits(raw string) *string {
	digits := strings.Join(digitRuns.FindAllString(raw, -1), "")
	if len(digits) < 4 {
		return nil
	}
	out := digits[len(digits)-4:]
	return &out
}

// joinDateRange normalizes both sides of a billing cycle. The whole
// field is nil when either side fails to parse, rather than emitting a
// half-formed range.
func joinDateRange(start, end string) *string {
	s := ParseDate(start)
	t := ParseDate(end)
	if s == nil || t == nil {
		return nil
	}
	out := *s + " to " + *t
	return &out
}

// scoreConfidence grades completeness of the ten target fields: the
// share that is neither null nor "Unknown". It says nothing about
// whether the matched values are correct.
func scoreConfidence(rec *models.ExtractionRecord) models.Confidence {
	values := rec.FieldValues()
	extracted := 0
	for _, v := range values {
		if v != nil && *v != string(models.IssuerUnknown) {
			extracted++
		}
	}

	ratio := float64(extracted) / float64(len(values))
	switch {
	case ratio >= 0.8:
		return models.ConfidenceHigh
	case ratio >= 0.5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// setField writes a field value onto the record.
func setField(rec *models.ExtractionRecord, field models.FieldName, value *string) {
	switch field {
	case models.FieldCardLast4:
		rec.CardLast4 = value
	case models.FieldBillingCycle:
		rec.BillingCycle = value
	case models.FieldPaymentDueDate:
		rec.PaymentDueDate = value
	case models.FieldTotalBalance:
		rec.TotalBalance = value
	case models.FieldMinimumPayment:
		rec.MinimumPayment = value
	case models.FieldStatementDate:
		rec.StatementDate = value
	case models.FieldAccountHolder:
		rec.AccountHolder = value
	case models.FieldCreditLimit:
		rec.CreditLimit = value
	case models.FieldAvailableCredit:
		rec.AvailableCredit = value
	}
}
