package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateHash(t *testing.T) {
	base := StoredTransaction{
		ID:           "t1",
		Date:         time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("500.00"),
		Counterparty: "Zomato",
		AccountID:    "acc-1",
	}

	// The hash identifies the real-world event, not the extraction, so a
	// different ID or time of day must not change it.
	same := base
	same.ID = "t2"
	same.Date = base.Date.Add(3 * time.Hour)
	assert.Equal(t, base.GenerateHash(), same.GenerateHash())

	differentAmount := base
	differentAmount.Amount = decimal.RequireFromString("500.01")
	assert.NotEqual(t, base.GenerateHash(), differentAmount.GenerateHash())

	differentDay := base
	differentDay.Date = base.Date.AddDate(0, 0, 1)
	assert.NotEqual(t, base.GenerateHash(), differentDay.GenerateHash())

	differentCounterparty := base
	differentCounterparty.Counterparty = "Swiggy"
	assert.NotEqual(t, base.GenerateHash(), differentCounterparty.GenerateHash())
}

func TestCandidateStored(t *testing.T) {
	candidate := TransactionCandidate{
		ID:           "c1",
		Date:         time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("500.00"),
		Direction:    DirectionExpense,
		Counterparty: "Zomato",
		Description:  "UPI Transaction transaction",
		CategoryHint: "food_dining",
		Origin:       OriginSMS,
		Provenance:   Provenance{SourceFamily: "upi"},
	}

	txn := candidate.Stored()

	assert.Equal(t, candidate.ID, txn.ID)
	assert.Equal(t, candidate.CategoryHint, txn.Category)
	assert.Equal(t, candidate.Direction, txn.Direction)
	assert.Equal(t, "upi", txn.Provenance.SourceFamily)
	assert.NotEmpty(t, txn.Hash)
	assert.Equal(t, txn.GenerateHash(), txn.Hash)
}
