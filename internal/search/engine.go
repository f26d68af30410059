// Package search filters, ranks and summarizes transaction sets in memory.
// All operations are read-only over caller-owned slices.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// Sort field and order constants for Filter.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByMerchant = "merchant"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter narrows a transaction set. Nil/zero fields are ignored.
type Filter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	AccountID    string
	Category     string
	Counterparty string
	Description  string
	SortBy       string
	SortOrder    string
	Direction    model.TransactionDirection
	Origin       model.TransactionOrigin
}

// Result pairs the filtered transactions with the filter that produced them.
type Result struct {
	Transactions []model.StoredTransaction
	Filter       Filter
	Total        int
}

// Metrics summarizes a filtered transaction set.
type Metrics struct {
	ByDirection   map[model.TransactionDirection]decimal.Decimal
	ByCategory    map[string]decimal.Decimal
	TotalAmount   decimal.Decimal
	AverageAmount decimal.Decimal
	Count         int
}

// TrendPoint is one day of income/expense flow.
type TrendPoint struct {
	Date    string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// SpendingPattern describes a recurring counterparty.
type SpendingPattern struct {
	Counterparty  string
	Frequency     int
	AverageAmount decimal.Decimal
}

// Engine runs searches over in-memory transaction sets.
type Engine struct{}

// NewEngine creates a search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Search applies the filter and sort order, returning a new slice.
func (e *Engine) Search(transactions []model.StoredTransaction, filter Filter) Result {
	results := make([]model.StoredTransaction, 0, len(transactions))

	for _, txn := range transactions {
		if matchesFilter(txn, filter) {
			results = append(results, txn)
		}
	}

	sortResults(results, filter.SortBy, filter.SortOrder)

	return Result{
		Transactions: results,
		Total:        len(results),
		Filter:       filter,
	}
}

func matchesFilter(txn model.StoredTransaction, f Filter) bool {
	if f.AccountID != "" && txn.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && txn.Category != f.Category {
		return false
	}
	if f.Direction != "" && txn.Direction != f.Direction {
		return false
	}
	if f.Origin != "" && txn.Origin != f.Origin {
		return false
	}
	if f.StartDate != nil && txn.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && txn.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && txn.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && txn.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Counterparty != "" &&
		!strings.Contains(strings.ToLower(txn.Counterparty), strings.ToLower(f.Counterparty)) {
		return false
	}
	if f.Description != "" &&
		!strings.Contains(strings.ToLower(txn.Description), strings.ToLower(f.Description)) {
		return false
	}
	return true
}

func sortResults(transactions []model.StoredTransaction, sortBy, sortOrder string) {
	asc := sortOrder == SortAsc

	sort.SliceStable(transactions, func(i, j int) bool {
		var less bool
		switch sortBy {
		case SortByAmount:
			less = transactions[i].Amount.LessThan(transactions[j].Amount)
		case SortByMerchant:
			less = transactions[i].Counterparty < transactions[j].Counterparty
		case SortByDate:
			fallthrough
		default:
			less = transactions[i].Date.Before(transactions[j].Date)
		}
		if asc {
			return less
		}
		return !less
	})
}

// FullTextSearch returns transactions where every query term appears in the
// counterparty or description. Queries shorter than two characters return
// nothing.
func (e *Engine) FullTextSearch(transactions []model.StoredTransaction, query string) []model.StoredTransaction {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return nil
	}
	terms := strings.Fields(query)

	var results []model.StoredTransaction
	for _, txn := range transactions {
		for _, field := range []string{txn.Counterparty, txn.Description} {
			if field == "" {
				continue
			}
			if containsAllTerms(strings.ToLower(field), terms) {
				results = append(results, txn)
				break
			}
		}
	}
	return results
}

func containsAllTerms(value string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(value, term) {
			return false
		}
	}
	return true
}

// GetMetrics summarizes the transactions selected by the filter.
func (e *Engine) GetMetrics(transactions []model.StoredTransaction, filter Filter) Metrics {
	filtered := e.Search(transactions, filter).Transactions

	metrics := Metrics{
		ByDirection: make(map[model.TransactionDirection]decimal.Decimal),
		ByCategory:  make(map[string]decimal.Decimal),
		Count:       len(filtered),
	}

	for _, txn := range filtered {
		metrics.TotalAmount = metrics.TotalAmount.Add(txn.Amount)
		metrics.ByDirection[txn.Direction] = metrics.ByDirection[txn.Direction].Add(txn.Amount)
		if txn.Category != "" {
			metrics.ByCategory[txn.Category] = metrics.ByCategory[txn.Category].Add(txn.Amount)
		}
	}

	if metrics.Count > 0 {
		metrics.AverageAmount = metrics.TotalAmount.Div(decimal.NewFromInt(int64(metrics.Count)))
	}

	return metrics
}

// GroupByPeriod buckets transactions by day, week, month or year.
func (e *Engine) GroupByPeriod(transactions []model.StoredTransaction, period string) map[string][]model.StoredTransaction {
	grouped := make(map[string][]model.StoredTransaction)

	for _, txn := range transactions {
		var key string
		switch period {
		case "week":
			weekStart := txn.Date.AddDate(0, 0, -int(txn.Date.Weekday()))
			key = weekStart.Format("2006-01-02")
		case "month":
			key = txn.Date.Format("2006-01")
		case "year":
			key = txn.Date.Format("2006")
		default: // day
			key = txn.Date.Format("2006-01-02")
		}
		grouped[key] = append(grouped[key], txn)
	}

	return grouped
}

// GroupByCounterparty buckets transactions by counterparty text.
func (e *Engine) GroupByCounterparty(transactions []model.StoredTransaction) map[string][]model.StoredTransaction {
	grouped := make(map[string][]model.StoredTransaction)
	for _, txn := range transactions {
		key := txn.Counterparty
		if key == "" {
			key = "Unknown"
		}
		grouped[key] = append(grouped[key], txn)
	}
	return grouped
}

// GroupByCategory buckets transactions by category.
func (e *Engine) GroupByCategory(transactions []model.StoredTransaction) map[string][]model.StoredTransaction {
	grouped := make(map[string][]model.StoredTransaction)
	for _, txn := range transactions {
		key := txn.Category
		if key == "" {
			key = "uncategorized"
		}
		grouped[key] = append(grouped[key], txn)
	}
	return grouped
}

// TrendAnalysis returns daily income/expense flow for the trailing window.
func (e *Engine) TrendAnalysis(transactions []model.StoredTransaction, days int) []TrendPoint {
	now := time.Now()
	start := now.AddDate(0, 0, -days)

	var recent []model.StoredTransaction
	for _, txn := range transactions {
		if !txn.Date.Before(start) {
			recent = append(recent, txn)
		}
	}

	byDay := e.GroupByPeriod(recent, "day")

	points := make([]TrendPoint, 0, days+1)
	for i := 0; i <= days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")

		point := TrendPoint{Date: date}
		for _, txn := range byDay[date] {
			switch txn.Direction {
			case model.DirectionIncome:
				point.Income = point.Income.Add(txn.Amount)
			case model.DirectionExpense:
				point.Expense = point.Expense.Add(txn.Amount)
			}
		}
		point.Net = point.Income.Sub(point.Expense)
		points = append(points, point)
	}

	return points
}

// DetectSpendingPatterns finds counterparties seen at least minOccurrences
// times, most frequent first.
func (e *Engine) DetectSpendingPatterns(transactions []model.StoredTransaction, minOccurrences int) []SpendingPattern {
	if minOccurrences <= 0 {
		minOccurrences = 3
	}

	var patterns []SpendingPattern
	for counterparty, txns := range e.GroupByCounterparty(transactions) {
		if len(txns) < minOccurrences {
			continue
		}

		total := decimal.Zero
		for _, txn := range txns {
			total = total.Add(txn.Amount)
		}

		patterns = append(patterns, SpendingPattern{
			Counterparty:  counterparty,
			Frequency:     len(txns),
			AverageAmount: total.Div(decimal.NewFromInt(int64(len(txns)))),
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Frequency != patterns[j].Frequency {
			return patterns[i].Frequency > patterns[j].Frequency
		}
		return patterns[i].Counterparty < patterns[j].Counterparty
	})

	return patterns
}
