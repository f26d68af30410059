package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltpappu0224/finance-tracker/internal/model"
)

func TestReconcileAll(t *testing.T) {
	transactions := []model.StoredTransaction{
		stored("t1", baseTime, "500.00", model.DirectionExpense, "Zomato"),
		stored("t2", baseTime.Add(5*time.Minute), "500.00", model.DirectionExpense, "Zomato"),
		stored("t3", baseTime.Add(10*time.Minute), "999.00", model.DirectionExpense, "Amazon"),
		stored("t4", baseTime.Add(20*time.Minute), "500.00", model.DirectionExpense, "ZOMATO"),
		stored("t5", baseTime.Add(30*time.Minute), "123.00", model.DirectionIncome, "Employer"),
	}

	result := ReconcileAll(transactions)

	require.Len(t, result.Merged, 3)
	require.Len(t, result.DuplicateGroups, 1)
	assert.Len(t, result.DuplicateGroups[0], 3)

	merged := result.Merged[0]
	assert.Equal(t, "t1", merged.ID)
	assert.Equal(t, []string{"t1", "t2", "t4"}, merged.Provenance.MergedFrom)
	assert.Equal(t, 3, merged.Provenance.MergeCount)

	assert.Equal(t, "t3", result.Merged[1].ID)
	assert.Equal(t, "t5", result.Merged[2].ID)
	assert.Zero(t, result.Merged[1].Provenance.MergeCount)
}

func TestReconcileAll_EveryInputAssignedOnce(t *testing.T) {
	transactions := []model.StoredTransaction{
		stored("a1", baseTime, "100.00", model.DirectionExpense, "Shop"),
		stored("a2", baseTime.Add(10*time.Minute), "100.00", model.DirectionExpense, "Shop"),
		stored("b1", baseTime, "50.00", model.DirectionIncome, "Payer"),
		stored("b2", baseTime.Add(15*time.Minute), "50.00", model.DirectionIncome, "Payer"),
		stored("b3", baseTime.Add(40*time.Minute), "50.00", model.DirectionIncome, "Payer"),
		stored("s1", baseTime, "77.00", model.DirectionExpense, "Single"),
	}

	result := ReconcileAll(transactions)

	var seen []string
	for _, txn := range result.Merged {
		if txn.Provenance.MergeCount > 0 {
			seen = append(seen, txn.Provenance.MergedFrom...)
		} else {
			seen = append(seen, txn.ID)
		}
	}

	assert.ElementsMatch(t, []string{"a1", "a2", "b1", "b2", "b3", "s1"}, seen)
}

func TestReconcileAll_NoTransitiveChaining(t *testing.T) {
	// t2 sits within the window of both t1 and t3, but t1 and t3 are too
	// far apart. t2 joins t1's group; t3 must not be pulled in after it.
	transactions := []model.StoredTransaction{
		stored("t1", baseTime, "200.00", model.DirectionExpense, "Shop"),
		stored("t2", baseTime.Add(50*time.Minute), "200.00", model.DirectionExpense, "Shop"),
		stored("t3", baseTime.Add(100*time.Minute), "200.00", model.DirectionExpense, "Shop"),
	}

	result := ReconcileAll(transactions)

	require.Len(t, result.Merged, 2)
	assert.Equal(t, []string{"t1", "t2"}, result.Merged[0].Provenance.MergedFrom)
	assert.Equal(t, "t3", result.Merged[1].ID)
	assert.Zero(t, result.Merged[1].Provenance.MergeCount)
}

func TestReconcileAll_MergePolicy(t *testing.T) {
	primary := stored("p", baseTime, "250.00", model.DirectionExpense, "Amazon")
	primary.Description = ""

	transactions := []model.StoredTransaction{
		primary,
		stored("d1", baseTime.Add(5*time.Minute), "250.00", model.DirectionExpense, "AMAZON.IN"),
		stored("d2", baseTime.Add(10*time.Minute), "250.00", model.DirectionExpense, "AMAZON.IN"),
	}

	result := ReconcileAll(transactions)

	require.Len(t, result.Merged, 1)
	merged := result.Merged[0]

	// Primary identity and amount survive; the counterparty follows the
	// majority spelling within the group.
	assert.Equal(t, "p", merged.ID)
	assert.Equal(t, "AMAZON.IN", merged.Counterparty)
	assert.True(t, merged.Amount.Equal(primary.Amount))
	assert.Equal(t, MergedDescription, merged.Description)
	assert.Equal(t, []string{"p", "d1", "d2"}, merged.Provenance.MergedFrom)
}

func TestReconcileAll_KeepsDescription(t *testing.T) {
	first := stored("t1", baseTime, "80.00", model.DirectionExpense, "Cafe")
	first.Description = "Morning coffee"

	result := ReconcileAll([]model.StoredTransaction{
		first,
		stored("t2", baseTime.Add(2*time.Minute), "80.00", model.DirectionExpense, "Cafe"),
	})

	require.Len(t, result.Merged, 1)
	assert.Equal(t, "Morning coffee", result.Merged[0].Description)
}

func TestReconcileAll_InputNotMutated(t *testing.T) {
	transactions := []model.StoredTransaction{
		stored("t1", baseTime, "500.00", model.DirectionExpense, "Zomato"),
		stored("t2", baseTime.Add(5*time.Minute), "500.00", model.DirectionExpense, "Zomato"),
	}

	ReconcileAll(transactions)

	assert.Empty(t, transactions[0].Provenance.MergedFrom)
	assert.Empty(t, transactions[1].Provenance.MergedFrom)
}

func TestReconcileAll_Empty(t *testing.T) {
	result := ReconcileAll(nil)

	assert.Empty(t, result.Merged)
	assert.Empty(t, result.DuplicateGroups)
}

func TestScanAdjacentPairs(t *testing.T) {
	transactions := []model.StoredTransaction{
		stored("x1", baseTime, "100.00", model.DirectionExpense, "Shop"),
		stored("x2", baseTime.Add(90*time.Minute), "100.03", model.DirectionExpense, "Shop"),
		stored("x3", baseTime.Add(100*time.Minute), "500.00", model.DirectionExpense, "Other"),
	}

	pairs := ScanAdjacentPairs(transactions, 0)

	require.Len(t, pairs, 1)
	assert.Equal(t, "x1", pairs[0][0].ID)
	assert.Equal(t, "x2", pairs[0][1].ID)
}

func TestScanAdjacentPairs_WindowBound(t *testing.T) {
	// y1 and y2 are duplicates but not adjacent within a window of two, so
	// the pre-filter never compares them.
	transactions := []model.StoredTransaction{
		stored("y1", baseTime, "100.00", model.DirectionExpense, "Shop"),
		stored("z", baseTime.Add(5*time.Minute), "700.00", model.DirectionExpense, "Other"),
		stored("y2", baseTime.Add(10*time.Minute), "100.00", model.DirectionExpense, "Shop"),
	}

	assert.Empty(t, ScanAdjacentPairs(transactions, 2))
	assert.Len(t, ScanAdjacentPairs(transactions, 3), 1)
}
