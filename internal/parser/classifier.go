package parser

import (
	"strings"

	"github.com/cardlens/statement-parser/internal/models"
)

// issuerKeywords maps each issuer to the lowercase keywords that identify
// it. Slice order is the classification priority: a statement mentioning
// both "chase" and "discover" is classified as Chase. The order must not
// change without revisiting callers that depend on determinism.
var issuerKeywords = []struct {
	issuer   models.Issuer
	keywords []string
}{
	{models.IssuerChase, []string{"chase", "jpmorgan"}},
	{models.IssuerAmex, []string{"american express", "amex"}},
	{models.IssuerCitibank, []string{"citibank", "citi card"}},
	{models.IssuerCapitalOne, []string{"capital one"}},
	{models.IssuerDiscover, []string{"discover"}},
}

// Classify identifies the card issuer from statement text by keyword
// scan, returning IssuerUnknown when no keyword is present.
func Classify(text string) models.Issuer {
	lower := strings.ToLower(text)
	for _, entry := range issuerKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.issuer
			}
		}
	}
	return models.IssuerUnknown
}
