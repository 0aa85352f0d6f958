package models

// Issuer represents a supported credit card issuer.
type Issuer string

const (
	IssuerChase      Issuer = "Chase"
	IssuerAmex       Issuer = "American Express"
	IssuerCitibank   Issuer = "Citibank"
	IssuerCapitalOne Issuer = "Capital One"
	IssuerDiscover   Issuer = "Discover"
	IssuerUnknown    Issuer = "Unknown"
)

// SupportedIssuers returns the issuers with dedicated pattern sets,
// in classification priority order.
func SupportedIssuers() []Issuer {
	return []Issuer{
		IssuerChase,
		IssuerAmex,
		IssuerCitibank,
		IssuerCapitalOne,
		IssuerDiscover,
	}
}

// FieldName identifies one of the ten data points extracted from a statement.
type FieldName string

const (
	FieldCardIssuer      FieldName = "card_issuer"
	FieldCardLast4       FieldName = "card_last_4_digits"
	FieldBillingCycle    FieldName = "billing_cycle"
	FieldPaymentDueDate  FieldName = "payment_due_date"
	FieldTotalBalance    FieldName = "total_balance"
	FieldMinimumPayment  FieldName = "minimum_payment"
	FieldStatementDate   FieldName = "statement_date"
	FieldAccountHolder   FieldName = "account_holder"
	FieldCreditLimit     FieldName = "credit_limit"
	FieldAvailableCredit FieldName = "available_credit"
)

// Confidence is a coarse completeness signal over an extraction result.
// It says how many fields were found, not whether they are correct.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ExtractionRecord holds the fields extracted from a single statement.
// Pointer fields are nil when the value could not be located in the text.
// Records are immutable after the engine returns them.
type ExtractionRecord struct {
	CardIssuer           string     `json:"card_issuer"`
	CardLast4            *string    `json:"card_last_4_digits"`
	BillingCycle         *string    `json:"billing_cycle"`
	PaymentDueDate       *string    `json:"payment_due_date"`
	TotalBalance         *string    `json:"total_balance"`
	MinimumPayment       *string    `json:"minimum_payment"`
	StatementDate        *string    `json:"statement_date"`
	AccountHolder        *string    `json:"account_holder"`
	CreditLimit          *string    `json:"credit_limit"`
	AvailableCredit      *string    `json:"available_credit"`
	ExtractionConfidence Confidence `json:"extraction_confidence"`
	RawTextLength        int        `json:"raw_text_length"`
}

// FieldValues returns the ten target fields keyed by name, with nil for
// unextracted values. card_issuer is included as a pointer for uniformity.
func (r *ExtractionRecord) FieldValues() map[FieldName]*string {
	issuer := r.CardIssuer
	return map[FieldName]*string{
		FieldCardIssuer:      &issuer,
		FieldCardLast4:       r.CardLast4,
		FieldBillingCycle:    r.BillingCycle,
		FieldPaymentDueDate:  r.PaymentDueDate,
		FieldTotalBalance:    r.TotalBalance,
		FieldMinimumPayment:  r.MinimumPayment,
		FieldStatementDate:   r.StatementDate,
		FieldAccountHolder:   r.AccountHolder,
		FieldCreditLimit:     r.CreditLimit,
		FieldAvailableCredit: r.AvailableCredit,
	}
}
