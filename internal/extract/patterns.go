package extract

import "regexp"

// amountGroup matches a rupee amount with optional thousands separators,
// capturing the numeric part. Messages spell the currency as ₹, Rs or INR.
const amountGroup = `(?:₹|Rs\.?|INR)\s*([\d,]+(?:\.\d+)?)`

// Rule is an alternation of sub-patterns. The first alternative that
// produces a non-empty capture wins.
type Rule struct {
	alternatives []*regexp.Regexp
}

// NewRule compiles a case-insensitive rule from pattern alternatives.
// Rules are static configuration, so a bad pattern panics at load time.
func NewRule(exprs ...string) Rule {
	alts := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		alts[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return Rule{alternatives: alts}
}

// FirstCapture returns the first non-empty captured group across the rule's
// alternatives.
func (r Rule) FirstCapture(text string) (string, bool) {
	for _, re := range r.alternatives {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return group, true
			}
		}
	}
	return "", false
}

// FamilySpec describes one issuing bank or payment-provider pattern family:
// how to recognize its messages and how to pull amount, direction and
// counterparty out of them.
type FamilySpec struct {
	Tag          string
	DisplayName  string
	Bank         bool // true for issuing banks, false for payment providers
	Keywords     []string
	Debit        Rule
	Credit       Rule
	Counterparty Rule
}

// providerFamilies are checked before bank families: provider-specific rules
// are more precise than the generic bank rules.
var providerFamilies = []FamilySpec{
	{
		Tag:         "phonepe",
		DisplayName: "PhonePe",
		Keywords:    []string{"phonepe"},
		Debit:       NewRule(`PhonePe.*?(?:paid|sent|transferred).*?` + amountGroup),
		Credit:      NewRule(`PhonePe.*?(?:received|credited).*?` + amountGroup),
		Counterparty: NewRule(
			`to\s+([A-Za-z\s@.,-]+?)(?:\s+on|\s+via|$)`),
	},
	{
		Tag:         "googlepay",
		DisplayName: "Google Pay",
		Keywords:    []string{"google pay"},
		Debit:       NewRule(`Google Pay.*?(?:paid|sent|transferred).*?` + amountGroup),
		Credit:      NewRule(`Google Pay.*?(?:received|credited).*?` + amountGroup),
		Counterparty: NewRule(
			`to\s+([A-Za-z\s@.,-]+?)(?:\s+on|\s+via|$)`),
	},
	{
		Tag:         "paytm",
		DisplayName: "Paytm",
		Keywords:    []string{"paytm"},
		Debit:       NewRule(`Paytm.*?(?:payment|transferred|paid|sent).*?` + amountGroup),
		Credit:      NewRule(`Paytm.*?(?:received|credited).*?` + amountGroup),
		Counterparty: NewRule(
			`to\s+([A-Za-z\s@.,-]+?)(?:\s+on|$)`),
	},
	{
		Tag:         "bharatqr",
		DisplayName: "Bharat QR",
		Keywords:    []string{"bharat qr"},
		Debit:       NewRule(`Bharat QR.*?(?:paid|transferred).*?` + amountGroup),
		Credit:      NewRule(`Bharat QR.*?(?:received|credited).*?` + amountGroup),
		Counterparty: NewRule(
			`at\s+([A-Za-z\s&.,-]+?)(?:\s+on|$)`),
	},
}

var bankFamilies = []FamilySpec{
	{
		Tag:         "hdfc",
		DisplayName: "HDFC Bank",
		Bank:        true,
		Keywords:    []string{"hdfc"},
		Debit: NewRule(
			`(?:Debit|Debited|Withdrawal).*?`+amountGroup,
			`Account [A-Z0-9]+ debited (?:with |by )?`+amountGroup),
		Credit: NewRule(
			`(?:Credit|Credited|Deposit).*?`+amountGroup,
			`Account [A-Z0-9]+ credited (?:with |by )?`+amountGroup),
		Counterparty: NewRule(
			`(?:at|to|from)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+Ref|\s+on|\s+INR|$)`),
	},
	{
		Tag:         "icici",
		DisplayName: "ICICI Bank",
		Bank:        true,
		Keywords:    []string{"icici"},
		Debit: NewRule(
			`(?:Debit|Withdrawn|Debited).*?`+amountGroup,
			`Acct\s+[A-Z0-9]+.*?debited.*?`+amountGroup),
		Credit: NewRule(
			`(?:Credit|Credited|Deposited).*?`+amountGroup,
			`Acct\s+[A-Z0-9]+.*?credited.*?`+amountGroup),
		Counterparty: NewRule(
			`(?:to|from|at)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+Ref|\s+on|$)`),
	},
	{
		Tag:         "sbi",
		DisplayName: "State Bank of India",
		Bank:        true,
		Keywords:    []string{"sbi", "state bank"},
		Debit: NewRule(
			`(?:Debited|Debit|Withdrawal).*?`+amountGroup,
			`Account [A-Z0-9]+ debited (?:with |by )?`+amountGroup),
		Credit: NewRule(
			`(?:Credited|Credit|Deposit).*?`+amountGroup,
			`Account [A-Z0-9]+ credited (?:with |by )?`+amountGroup),
		Counterparty: NewRule(
			`(?:to|from|at)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+Reference|\s+Ref|\s+on|$)`),
	},
	{
		Tag:         "axis",
		DisplayName: "Axis Bank",
		Bank:        true,
		Keywords:    []string{"axis"},
		Debit: NewRule(
			`(?:Debited|Debit).*?`+amountGroup,
			`Account [A-Z0-9]+ has been debited (?:with |by )?`+amountGroup),
		Credit: NewRule(
			`(?:Credited|Credit).*?`+amountGroup,
			`Account [A-Z0-9]+ has been credited (?:with |by )?`+amountGroup),
		Counterparty: NewRule(
			`(?:to|from|at)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+Ref|\s+on|$)`),
	},
	{
		Tag:         "kotak",
		DisplayName: "Kotak Mahindra Bank",
		Bank:        true,
		Keywords:    []string{"kotak"},
		Debit: NewRule(
			`(?:Debited|Debit).*?`+amountGroup,
			`Account [A-Z0-9]+ debited (?:with |by )?`+amountGroup),
		Credit: NewRule(
			`(?:Credited|Credit).*?`+amountGroup,
			`Account [A-Z0-9]+ credited (?:with |by )?`+amountGroup),
		Counterparty: NewRule(
			`(?:to|from|at)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+on|$)`),
	},
}

// fallbackFamily handles generic peer-to-peer transfer messages that name
// neither a known bank nor a known provider.
var fallbackFamily = FamilySpec{
	Tag:         "upi",
	DisplayName: "UPI Transaction",
	Debit:       NewRule(`(?:paid|sent|transferred|debited|debit|withdrawn)(?:\s+(?:with|by))?.*?` + amountGroup),
	Credit:      NewRule(`(?:received|credited|credit|deposited).*?` + amountGroup),
	Counterparty: NewRule(
		`(?:at|to|from)\s+([A-Za-z0-9\s&.,-]+?)(?:\s+Ref|\s+on|\s+INR|$)`),
}

// referenceRule pulls an external reference token out of a message when one
// is present.
var referenceRule = NewRule(`(?:Ref(?:erence)?)[.:\s]+(?:No[.:\s]+)?([A-Za-z0-9]{4,})`)
