package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltpappu0224/finance-tracker/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTransaction(id string, at time.Time, amount, counterparty string) model.StoredTransaction {
	return model.StoredTransaction{
		ID:           id,
		Date:         at,
		Amount:       decimal.RequireFromString(amount),
		Direction:    model.DirectionExpense,
		Counterparty: counterparty,
		Description:  counterparty + " transaction",
		Category:     "food_dining",
		AccountID:    "acc-1",
		Origin:       model.OriginSMS,
		Provenance: model.Provenance{
			ExtractedAt:  at,
			OriginalText: "Paid at " + counterparty,
			SourceFamily: "upi",
		},
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestSaveAndGetTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC)
	first := testTransaction("t1", at, "500.00", "Zomato")
	second := testTransaction("t2", at.Add(time.Hour), "1200.00", "Amazon")

	// Insert newest first to prove ordering comes from the query.
	require.NoError(t, store.SaveTransaction(ctx, &second))
	require.NoError(t, store.SaveTransaction(ctx, &first))

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "t1", loaded[0].ID)
	assert.Equal(t, "t2", loaded[1].ID)

	got := loaded[0]
	assert.True(t, got.Amount.Equal(first.Amount), "amount = %s", got.Amount)
	assert.Equal(t, first.Direction, got.Direction)
	assert.Equal(t, first.Counterparty, got.Counterparty)
	assert.Equal(t, first.Category, got.Category)
	assert.Equal(t, first.AccountID, got.AccountID)
	assert.Equal(t, first.Origin, got.Origin)
	assert.Equal(t, first.Hash, got.Hash)
	assert.True(t, got.Date.Equal(first.Date))
	assert.Equal(t, first.Provenance.OriginalText, got.Provenance.OriginalText)
	assert.Equal(t, first.Provenance.SourceFamily, got.Provenance.SourceFamily)
}

func TestSaveTransaction_FillsHash(t *testing.T) {
	store := newTestStorage(t)

	txn := testTransaction("t1", time.Now(), "100.00", "Shop")
	require.Empty(t, txn.Hash)

	require.NoError(t, store.SaveTransaction(context.Background(), &txn))
	assert.NotEmpty(t, txn.Hash)
}

func TestSaveTransaction_IdempotentOnHash(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC)

	// Same real-world event arriving twice with different extraction IDs.
	first := testTransaction("t1", at, "500.00", "Zomato")
	duplicate := testTransaction("t2", at, "500.00", "Zomato")

	require.NoError(t, store.SaveTransaction(ctx, &first))
	require.NoError(t, store.SaveTransaction(ctx, &duplicate))

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "t1", loaded[0].ID)
}

func TestSaveTransaction_Validation(t *testing.T) {
	store := newTestStorage(t)

	txn := testTransaction("", time.Now(), "100.00", "Shop")
	assert.Error(t, store.SaveTransaction(context.Background(), &txn))
}

func TestSaveTransactions_Batch(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC)
	batch := []model.StoredTransaction{
		testTransaction("t1", at, "500.00", "Zomato"),
		testTransaction("t2", at.Add(time.Minute), "80.00", "Swiggy"),
		testTransaction("t3", at.Add(2*time.Minute), "1200.00", "Amazon"),
	}

	require.NoError(t, store.SaveTransactions(ctx, batch))

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestApplyMerge(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	at := time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC)
	primary := testTransaction("t1", at, "500.00", "Zomato")
	duplicate := testTransaction("t2", at.Add(5*time.Minute), "500.00", "ZOMATO")
	unrelated := testTransaction("t3", at.Add(time.Hour), "999.00", "Amazon")

	require.NoError(t, store.SaveTransaction(ctx, &primary))
	require.NoError(t, store.SaveTransaction(ctx, &duplicate))
	require.NoError(t, store.SaveTransaction(ctx, &unrelated))

	merged := primary
	merged.Hash = ""
	merged.Provenance.MergedFrom = []string{"t1", "t2"}
	merged.Provenance.MergeCount = 2

	require.NoError(t, store.ApplyMerge(ctx, merged))

	loaded, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "t1", loaded[0].ID)
	assert.Equal(t, []string{"t1", "t2"}, loaded[0].Provenance.MergedFrom)
	assert.Equal(t, 2, loaded[0].Provenance.MergeCount)
	assert.Equal(t, "t3", loaded[1].ID)
}

func TestApplyMerge_RequiresSources(t *testing.T) {
	store := newTestStorage(t)

	merged := testTransaction("t1", time.Now(), "500.00", "Zomato")
	assert.Error(t, store.ApplyMerge(context.Background(), merged))
}
