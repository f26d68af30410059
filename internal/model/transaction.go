// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates which way money moved.
type TransactionDirection string

// Transaction direction constants.
const (
	DirectionIncome   TransactionDirection = "income"
	DirectionExpense  TransactionDirection = "expense"
	DirectionTransfer TransactionDirection = "transfer"
)

// TransactionOrigin indicates how a transaction entered the system.
type TransactionOrigin string

// Transaction origin constants.
const (
	OriginManual TransactionOrigin = "manual"
	OriginSMS    TransactionOrigin = "sms"
	OriginOCR    TransactionOrigin = "ocr"
	OriginImport TransactionOrigin = "import"
	OriginAPI    TransactionOrigin = "api"
)

// Provenance carries the raw material a record was derived from. It is
// opaque to the matching logic and travels with the record so the
// persistence collaborator can audit where a transaction came from.
type Provenance struct {
	ExtractedAt  time.Time `json:"extracted_at"`
	OriginalText string    `json:"original_text,omitempty"`
	SourceFamily string    `json:"source_family,omitempty"`
	BankName     string    `json:"bank_name,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	MergedFrom   []string  `json:"merged_from,omitempty"`
	MergeCount   int       `json:"merge_count,omitempty"`
}

// TransactionCandidate is an extracted, not-yet-reconciled transaction.
// Candidates are immutable once produced by the extractor; downstream
// consumers derive new values rather than mutating them.
type TransactionCandidate struct {
	Date         time.Time
	ID           string
	Counterparty string // Raw counterparty text, possibly empty
	Description  string
	CategoryHint string
	Direction    TransactionDirection
	Origin       TransactionOrigin
	Provenance   Provenance
	Amount       decimal.Decimal // Always positive; direction carries the sign
}

// StoredTransaction is a previously accepted transaction owned by the
// persistence collaborator. The core only ever reads these; merge
// suggestions are returned as new values for the caller to apply.
type StoredTransaction struct {
	Date         time.Time
	ID           string
	Counterparty string
	Description  string
	Category     string
	AccountID    string
	Hash         string
	Direction    TransactionDirection
	Origin       TransactionOrigin
	Provenance   Provenance
	Amount       decimal.Decimal
}

// GenerateHash creates a stable hash for idempotent import.
func (t *StoredTransaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Counterparty,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Stored converts a candidate into the stored-transaction shape the
// persistence collaborator accepts.
func (c *TransactionCandidate) Stored() StoredTransaction {
	txn := StoredTransaction{
		Date:         c.Date,
		ID:           c.ID,
		Counterparty: c.Counterparty,
		Description:  c.Description,
		Category:     c.CategoryHint,
		Direction:    c.Direction,
		Origin:       c.Origin,
		Provenance:   c.Provenance,
		Amount:       c.Amount,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}
