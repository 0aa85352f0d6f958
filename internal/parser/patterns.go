package parser

import (
	"fmt"
	"regexp"

	"github.com/cardlens/statement-parser/internal/models"
)

// postProcess tags how a raw regex capture is turned into a field value.
type postProcess int

const (
	postLast4 postProcess = iota
	postAmount
	postDate
	postDateRange
	postName
)

// fieldSpec pairs a field with its post-processing rule. The card_issuer
// field is resolved by the classifier, not by pattern lookup, so it does
// not appear here. Adding a field is a table change, not new control flow.
type fieldSpec struct {
	field models.FieldName
	post  postProcess
}

var fieldSpecs = []fieldSpec{
	{models.FieldCardLast4, postLast4},
	{models.FieldBillingCycle, postDateRange},
	{models.FieldPaymentDueDate, postDate},
	{models.FieldTotalBalance, postAmount},
	{models.FieldMinimumPayment, postAmount},
	{models.FieldStatementDate, postDate},
	{models.FieldAccountHolder, postName},
	{models.FieldCreditLimit, postAmount},
	{models.FieldAvailableCredit, postAmount},
}

// Pattern tables. All patterns are compiled case-insensitively and run
// against normalized (whitespace-collapsed) text. Order is priority:
// first match wins, issuer-specific entries are tried before generic
// ones. Zero capture groups means the whole match is the raw value, one
// group captures the value, two groups (billing cycle only) capture a
// start and end date.
//
// None of these backtrack catastrophically under RE2, which Go's regexp
// package guarantees runs in linear time.
var issuerPatterns = map[models.Issuer]map[models.FieldName][]string{
	models.IssuerChase: {
		models.FieldCardLast4: {
			`Account Number[:\s]+.*?(\d{4})`,
			`Card ending in[:\s]+(\d{4})`,
		},
		models.FieldBillingCycle: {
			`Statement Period[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*-\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldPaymentDueDate: {
			`Payment Due Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
			`Due Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldTotalBalance: {
			`New Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
			`Total Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldMinimumPayment: {
			`Minimum Payment Due[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldStatementDate: {
			`Statement Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
			`Closing Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldAccountHolder: {
			`(?:Account Holder|Name)[:\s]+([A-Z][a-zA-Z\s]+)`,
		},
		models.FieldCreditLimit: {
			`Credit Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldAvailableCredit: {
			`Available Credit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
	},
	models.IssuerAmex: {
		models.FieldCardLast4: {
			`Card Member[:\s]+.*?(\d{4})`,
			`Account ending in[:\s]+(\d{4})`,
		},
		models.FieldBillingCycle: {
			`Statement Period[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*to\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldPaymentDueDate: {
			`Payment Due[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldTotalBalance: {
			`Total Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
			`New Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldMinimumPayment: {
			`Minimum Payment[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldStatementDate: {
			`Statement Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldAccountHolder: {
			`Card Member[:\s]+([A-Z][a-zA-Z\s]+)`,
		},
		models.FieldCreditLimit: {
			`Credit Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldAvailableCredit: {
			`Available for Purchases[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
	},
	models.IssuerCitibank: {
		models.FieldCardLast4: {
			`Account Number[:\s]+.*?(\d{4})`,
		},
		models.FieldBillingCycle: {
			`Statement Period[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*-\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldPaymentDueDate: {
			`Payment Due Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldTotalBalance: {
			`New Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldMinimumPayment: {
			`Minimum Payment Due[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldStatementDate: {
			`Statement Closing Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldAccountHolder: {
			`(?:Account Holder|Primary Cardholder)[:\s]+([A-Z][a-zA-Z\s]+)`,
		},
		models.FieldCreditLimit: {
			`Credit Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldAvailableCredit: {
			`Available Credit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
	},
	models.IssuerCapitalOne: {
		models.FieldCardLast4: {
			`Account Number[:\s]+.*?(\d{4})`,
		},
		models.FieldBillingCycle: {
			`Statement Period[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*-\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldPaymentDueDate: {
			`Payment Due[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldTotalBalance: {
			`New Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldMinimumPayment: {
			`Minimum Payment[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldStatementDate: {
			`Statement Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldAccountHolder: {
			`(?:Account Holder|Name)[:\s]+([A-Z][a-zA-Z\s]+)`,
		},
		models.FieldCreditLimit: {
			`Credit Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldAvailableCredit: {
			`Available Credit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
	},
	models.IssuerDiscover: {
		models.FieldCardLast4: {
			`Account Number[:\s]+.*?(\d{4})`,
		},
		models.FieldBillingCycle: {
			`Statement Period[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*-\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldPaymentDueDate: {
			`Payment Due Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldTotalBalance: {
			`New Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldMinimumPayment: {
			`Minimum Payment[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldStatementDate: {
			`Statement Closing Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		},
		models.FieldAccountHolder: {
			`(?:Account Holder|Name)[:\s]+([A-Z][a-zA-Z\s]+)`,
		},
		models.FieldCreditLimit: {
			`Credit Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
		models.FieldAvailableCredit: {
			`Credit Available[:\s]+\$?([\d,]+\.?\d{0,2})`,
		},
	},
}

// genericPatterns is the universal fallback list, appended after any
// issuer-specific list (and used alone for unknown issuers).
var genericPatterns = map[models.FieldName][]string{
	models.FieldCardLast4: {
		`(?:Account|Card)(?:\s+Number)?[:\s]+.*?(\d{4})`,
		`ending in[:\s]+(\d{4})`,
		`(?:xxxx|XXXX)[:\s\-]*(\d{4})`,
	},
	models.FieldBillingCycle: {
		`(?:Statement|Billing)\s+(?:Period|Cycle)[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})\s*(?:-|to|through)\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
		`(\d{1,2}/\d{1,2}/\d{2,4})\s*(?:-|to)\s*(\d{1,2}/\d{1,2}/\d{2,4})`,
	},
	models.FieldPaymentDueDate: {
		`(?:Payment\s+)?Due\s+(?:Date|By)[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		`Pay(?:ment)?\s+By[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
	},
	models.FieldTotalBalance: {
		`(?:New|Total|Current)\s+Balance[:\s]+\$?([\d,]+\.?\d{0,2})`,
		`Balance\s+Due[:\s]+\$?([\d,]+\.?\d{0,2})`,
		`Amount\s+Due[:\s]+\$?([\d,]+\.?\d{0,2})`,
	},
	models.FieldMinimumPayment: {
		`Minimum\s+Payment(?:\s+Due)?[:\s]+\$?([\d,]+\.?\d{0,2})`,
		`Min\.?\s+Payment[:\s]+\$?([\d,]+\.?\d{0,2})`,
	},
	models.FieldStatementDate: {
		`Statement\s+(?:Date|Closing\s+Date)[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
		`Closing\s+Date[:\s]+(\d{1,2}/\d{1,2}/\d{2,4})`,
	},
	models.FieldAccountHolder: {
		`(?:Account\s+Holder|Card\s+Member|Name)[:\s]+([A-Z][a-zA-Z\s]{2,40})`,
	},
	models.FieldCreditLimit: {
		`Credit\s+Limit[:\s]+\$?([\d,]+\.?\d{0,2})`,
		`Total\s+Credit\s+Line[:\s]+\$?([\d,]+\.?\d{0,2})`,
	},
	models.FieldAvailableCredit: {
		`(?:Available|Credit\s+Available)[:\s]+\$?([\d,]+\.?\d{0,2})`,
		`Available\s+Credit[:\s]+\$?([\d,]+\.?\d{0,2})`,
	},
}

// Catalog holds the compiled pattern tables. It is built once and then
// only read, so concurrent extractions need no locking.
type Catalog struct {
	issuer  map[models.Issuer]map[models.FieldName][]*regexp.Regexp
	generic map[models.FieldName][]*regexp.Regexp
}

// CompileCatalog compiles the pattern tables case-insensitively. A
// malformed pattern is a configuration defect and fails compilation
// rather than surfacing mid-extraction.
func CompileCatalog() (*Catalog, error) {
	c := &Catalog{
		issuer:  make(map[models.Issuer]map[models.FieldName][]*regexp.Regexp, len(issuerPatterns)),
		generic: make(map[models.FieldName][]*regexp.Regexp, len(genericPatterns)),
	}

	for issuer, fields := range issuerPatterns {
		compiled := make(map[models.FieldName][]*regexp.Regexp, len(fields))
		for field, pats := range fields {
			res, err := compileAll(pats)
			if err != nil {
				return nil, fmt.Errorf("issuer %q field %q: %w", issuer, field, err)
			}
			compiled[field] = res
		}
		c.issuer[issuer] = compiled
	}

	for field, pats := range genericPatterns {
		res, err := compileAll(pats)
		if err != nil {
			return nil, fmt.Errorf("generic field %q: %w", field, err)
		}
		c.generic[field] = res
	}

	return c, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Candidates returns the ordered pattern sequence for a field: the
// issuer-specific list (empty for unknown issuers) followed by the
// generic fallbacks. The slice is composed fresh per call; the shared
// tables are never mutated.
func (c *Catalog) Candidates(issuer models.Issuer, field models.FieldName) []*regexp.Regexp {
	specific := c.issuer[issuer][field]
	generic := c.generic[field]

	out := make([]*regexp.Regexp, 0, len(specific)+len(generic))
	out = append(out, specific...)
	out = append(out, generic...)
	return out
}
