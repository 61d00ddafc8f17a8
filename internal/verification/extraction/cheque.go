package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"integrationhub/internal/verification/models"
)

var (
	accountNumberRe = regexp.MustCompile(`\b\d{9,18}\b`)
	ifscRe          = regexp.MustCompile(`\b[A-Z]{4}\d{7}\b`)
	chequeNumberRe  = regexp.MustCompile(`\b\d{6,8}\b`)
	chequeDateRe    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	amountRe        = regexp.MustCompile(`₹\s*([\d,]+\.?\d*)`)
)

// ChequeFields are the values recovered from cheque text. Empty strings mean
// the pattern did not match.
type ChequeFields struct {
	AccountNumber string
	IFSC          string
	ChequeNumber  string
	Date          string
	Amount        string
	PayeeName     string
	BankName      string
}

// ParseCheque applies pattern heuristics to cheque OCR lines.
func ParseCheque(lines []string) ChequeFields {
	text := strings.ToUpper(strings.Join(lines, " "))

	f := ChequeFields{
		AccountNumber: accountNumberRe.FindString(text),
		IFSC:          ifscRe.FindString(text),
		ChequeNumber:  chequeNumberRe.FindString(text),
		Date:          chequeDateRe.FindString(text),
	}
	if m := amountRe.FindStringSubmatch(text); m != nil {
		f.Amount = normalizeAmount(m[1])
	}
	return f
}

// normalizeAmount strips grouping separators and renders the amount with two
// decimals. Unparseable input is returned as matched.
func normalizeAmount(raw string) string {
	cleaned := strings.TrimRight(strings.ReplaceAll(raw, ",", ""), ".")
	if cleaned == "" {
		return raw
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return raw
	}
	return d.StringFixed(2)
}

// IsPaymentDocument reports whether the text carries payment or wallet keywords.
func IsPaymentDocument(lines []string) bool {
	text := strings.ToUpper(strings.Join(lines, "\n"))
	return containsAny(text, PaymentKeywords)
}

// MaskDocumentNumber keeps the first five characters and replaces the rest with
// a fixed suffix. Inputs shorter than five characters are returned unchanged.
func MaskDocumentNumber(number string) string {
	if len(number) < 5 {
		return number
	}
	return number[:5] + "XXXX"
}

// IsValidDocumentNumber reports whether number is a well-formed PAN, ignoring case.
func IsValidDocumentNumber(number string) bool {
	return models.DocumentNumberPattern.MatchString(strings.ToUpper(number))
}
