package dedupe

import (
	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// Reconciliation passes widen the detector's window; the adjacent-pair scan
// is a cheap pre-filter with an even looser policy.
const (
	reconcileWindowMinutes = 60
	adjacentWindowMinutes  = 120

	// DefaultScanWindowSize bounds the adjacent-pair scan when the caller
	// passes no window size.
	DefaultScanWindowSize = 10
)

var adjacentAmountTolerance = decimal.NewFromFloat(0.05)

// MergedDescription marks a merged record whose primary had no description.
const MergedDescription = "Merged duplicate transactions"

// ReconcileResult is the outcome of a full reconciliation pass. Every input
// transaction appears in exactly one Merged record: either passed through
// unchanged or folded into a group representative.
type ReconcileResult struct {
	Merged          []model.StoredTransaction
	DuplicateGroups [][]model.StoredTransaction
}

// ReconcileAll clusters duplicate transactions across the whole set and
// merges each cluster into one representative record. The input is
// read-only; merged records are new values for the caller to persist.
func ReconcileAll(transactions []model.StoredTransaction) ReconcileResult {
	cfg := Config{WindowMinutes: reconcileWindowMinutes}.withDefaults()

	var result ReconcileResult
	processed := make(map[string]bool, len(transactions))

	for _, txn := range transactions {
		if processed[txn.ID] {
			continue
		}

		verdict := score(storedProbe(txn), transactions, cfg)

		// A matched member may already belong to an earlier group; it must
		// not be assigned twice.
		matches := verdict.Matches[:0:0]
		for _, m := range verdict.Matches {
			if !processed[m.ID] {
				matches = append(matches, m)
			}
		}

		if verdict.IsDuplicate && len(matches) > 0 {
			group := make([]model.StoredTransaction, 0, len(matches)+1)
			group = append(group, txn)
			group = append(group, matches...)

			for _, member := range group {
				processed[member.ID] = true
			}

			result.DuplicateGroups = append(result.DuplicateGroups, group)
			result.Merged = append(result.Merged, mergeGroup(group))

			common.LogDebug("merged duplicate group", common.Fields{
				"primary": txn.ID,
				"size":    len(group),
			})
			continue
		}

		processed[txn.ID] = true
		result.Merged = append(result.Merged, txn)
	}

	return result
}

// mergeGroup folds a duplicate group into one representative record. The
// first-encountered transaction is primary; the representative counterparty
// is the most frequent counterparty string in the group, ties broken by
// first encounter.
func mergeGroup(group []model.StoredTransaction) model.StoredTransaction {
	merged := group[0]

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, txn := range group {
		if txn.Counterparty == "" {
			continue
		}
		counts[txn.Counterparty]++
		if _, ok := firstSeen[txn.Counterparty]; !ok {
			firstSeen[txn.Counterparty] = i
		}
	}

	best := merged.Counterparty
	bestCount := 0
	for counterparty, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[counterparty] < firstSeen[best]) {
			best = counterparty
			bestCount = count
		}
	}
	if best != "" {
		merged.Counterparty = best
	}

	if merged.Description == "" {
		merged.Description = MergedDescription
	}

	sourceIDs := make([]string, len(group))
	for i, txn := range group {
		sourceIDs[i] = txn.ID
	}
	merged.Provenance.MergedFrom = sourceIDs
	merged.Provenance.MergeCount = len(group)

	return merged
}

// ScanAdjacentPairs compares each transaction only against the next
// windowSize-1 transactions, using a looser policy than the authoritative
// reconciliation pass. Intended as an O(n·w) pre-filter over
// chronologically adjacent records after a bulk import.
func ScanAdjacentPairs(transactions []model.StoredTransaction, windowSize int) [][]model.StoredTransaction {
	if windowSize <= 0 {
		windowSize = DefaultScanWindowSize
	}

	cfg := Config{
		WindowMinutes:   adjacentWindowMinutes,
		AmountTolerance: adjacentAmountTolerance,
	}

	var pairs [][]model.StoredTransaction

	for i := range transactions {
		end := i + windowSize
		if end > len(transactions) {
			end = len(transactions)
		}
		for j := i + 1; j < end; j++ {
			verdict := score(storedProbe(transactions[i]), transactions[j:j+1], cfg)
			if verdict.IsDuplicate {
				pairs = append(pairs, []model.StoredTransaction{transactions[i], transactions[j]})
			}
		}
	}

	return pairs
}
