package extraction

// Tables holds the label and boilerplate literals the engine matches against.
// Lines are upper-cased before matching, so entries should be upper-case
// (non-Latin scripts are matched as-is).
type Tables struct {
	NameLabels     []string
	GuardianLabels []string
	DOBLabels      []string
	SkipPhrases    []string
}

// DefaultTables returns the English and Devanagari literals printed on PAN cards.
func DefaultTables() Tables {
	return Tables{
		NameLabels:     []string{"NAME", "नाम", "NAM", "NAME:"},
		GuardianLabels: []string{"FATHER", "पिता", "F/N", "S/O", "FATHER NAME", "FATHERS NAME", "FATHER'S NAME"},
		DOBLabels:      []string{"DATE OF BIRTH", "DOB", "जन्म", "BIRTH", "DOB:"},
		SkipPhrases: []string{
			"INCOME TAX", "TAX DEPARTMENT", "DEPARTMENT", "GOVT", "GOVT OF INDIA",
			"PERMANENT", "ACCOUNT", "NUMBER", "CARD", "SIGNATURE", "PHOTO", "ADDRESS",
			"SIGNE", "हस्ताक्षर", "आयकर", "विभाग", "भारत", "सरकार", "सत्यमेव जयते",
			"स्थायी", "लेखा", "कार्ड", "OFFICIAL", "GOVRNMENT",
		},
	}
}

// PaymentKeywords mark text that came from a payment receipt or wallet screen.
var PaymentKeywords = []string{"PAYMENT", "PAYMENTS", "PAYTM", "UPI"}
