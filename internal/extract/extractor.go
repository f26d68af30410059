// Package extract turns raw bank and payment-provider notification text
// into structured transaction candidates.
package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/merchant"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// Extractor classifies a message by issuing bank or payment provider and
// extracts amount, direction and counterparty. A nil registry disables the
// merchant-catalog category fallback; the keyword table still applies.
type Extractor struct {
	registry *merchant.Registry
	families []FamilySpec
}

// NewExtractor creates an extractor over the static pattern families.
func NewExtractor(registry *merchant.Registry) *Extractor {
	families := make([]FamilySpec, 0, len(providerFamilies)+len(bankFamilies))
	families = append(families, providerFamilies...)
	families = append(families, bankFamilies...)

	return &Extractor{
		registry: registry,
		families: families,
	}
}

// Extract parses a single message into a transaction candidate. Messages
// that match no pattern family rule, or whose amount does not parse, are
// expected input and return ok=false rather than an error.
func (e *Extractor) Extract(text string) (*model.TransactionCandidate, bool) {
	family := e.detectFamily(text)

	var (
		amountStr string
		direction model.TransactionDirection
	)

	if s, ok := family.Debit.FirstCapture(text); ok {
		amountStr = s
		direction = model.DirectionExpense
	} else if s, ok := family.Credit.FirstCapture(text); ok {
		amountStr = s
		direction = model.DirectionIncome
	} else {
		// Matching neither rule means the message is not a transaction.
		return nil, false
	}

	amount, ok := parseAmount(amountStr)
	if !ok {
		common.LogDebug("unparseable amount in message", common.Fields{
			"family": family.Tag,
			"amount": amountStr,
		})
		return nil, false
	}

	counterparty, ok := family.Counterparty.FirstCapture(text)
	if !ok {
		counterparty = family.DisplayName
	}
	counterparty = strings.TrimSpace(counterparty)

	hint, _ := categoryHint(counterparty + " " + text)
	if hint == "" && e.registry != nil {
		hint, _ = e.registry.SuggestCategory(counterparty)
	}

	now := time.Now()
	candidate := &model.TransactionCandidate{
		ID:           uuid.NewString(),
		Date:         now,
		Amount:       amount,
		Direction:    direction,
		Counterparty: counterparty,
		Description:  fmt.Sprintf("%s transaction", family.DisplayName),
		CategoryHint: hint,
		Origin:       model.OriginSMS,
		Provenance: model.Provenance{
			ExtractedAt:  now,
			OriginalText: text,
			SourceFamily: family.Tag,
		},
	}

	if family.Bank {
		candidate.Provenance.BankName = family.DisplayName
	}
	if ref, ok := referenceRule.FirstCapture(text); ok {
		candidate.Provenance.Reference = ref
	}

	return candidate, true
}

// ExtractAll parses a batch of messages, silently dropping texts that fail
// extraction. One malformed message never aborts the rest of the batch.
func (e *Extractor) ExtractAll(texts []string) []model.TransactionCandidate {
	candidates := make([]model.TransactionCandidate, 0, len(texts))
	for _, text := range texts {
		if candidate, ok := e.Extract(text); ok {
			candidates = append(candidates, *candidate)
		}
	}

	common.LogDebug("batch extraction finished", common.Fields{
		"messages":   len(texts),
		"candidates": len(candidates),
	})

	return candidates
}

// detectFamily picks the pattern family for a message. Providers are
// checked before banks; messages naming neither fall back to the generic
// peer-to-peer transfer family.
func (e *Extractor) detectFamily(text string) FamilySpec {
	lower := strings.ToLower(text)

	for _, family := range e.families {
		for _, keyword := range family.Keywords {
			if strings.Contains(lower, keyword) {
				return family
			}
		}
	}

	return fallbackFamily
}

// parseAmount converts a captured numeric group into a positive decimal
// after stripping thousands separators.
func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return amount, true
}
