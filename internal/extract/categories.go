package extract

import "strings"

// categoryKeyword maps a message keyword to a category hint. The table is
// ordered: the first keyword found in the text wins, so broader keywords
// must stay below more specific ones.
type categoryKeyword struct {
	keyword  string
	category string
}

var categoryKeywords = []categoryKeyword{
	{"atm", "cash_withdrawal"},
	{"groceries", "groceries"},
	{"fuel", "transportation"},
	{"petrol", "transportation"},
	{"uber", "transportation"},
	{"ola", "transportation"},
	{"zomato", "food_dining"},
	{"swiggy", "food_dining"},
	{"amazon", "shopping"},
	{"flipkart", "shopping"},
	{"netflix", "entertainment"},
	{"spotify", "entertainment"},
	{"gym", "personal_care"},
	{"hospital", "healthcare"},
	{"pharmacy", "healthcare"},
	{"electricity", "bills"},
	{"water", "bills"},
	{"internet", "bills"},
	{"insurance", "insurance"},
	{"rent", "rent"},
	{"salary", "salary"},
	{"wage", "salary"},
	{"freelance", "freelance_income"},
	{"dividend", "investment_income"},
}

// categoryHint scans the combined counterparty and message text for a known
// keyword and returns its category.
func categoryHint(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.category, true
		}
	}
	return "", false
}
