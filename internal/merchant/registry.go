// Package merchant maintains the catalog of canonical merchant identities
// and resolves free-text counterparty strings against it.
package merchant

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// DefaultSearchLimit caps ranked search results when the caller passes no limit.
const DefaultSearchLimit = 10

// Search scoring policy. Prefix and substring scores decay with the length
// gap between the merchant name and the query.
const (
	scoreExact          = 100.0
	scorePrefixBase     = 80.0
	scorePrefixDecay    = 5.0
	scoreSubstringBase  = 60.0
	scoreSubstringDecay = 2.0
	scoreAliasContains  = 40.0
	scoreTokenWeight    = 50.0
	tokenSimilarityMin  = 0.6
	frequencyBonus      = 2.0
)

// Registry is the one piece of mutable state in the core. Reads and the two
// mutation operations must not interleave destructively, so all access goes
// through a registry-wide RWMutex.
type Registry struct {
	byKey map[string]*model.MerchantRecord
	mu    sync.RWMutex
}

// NewRegistry builds a registry from a static seed catalog. Malformed seed
// entries are fatal at load time since the catalog is static input.
func NewRegistry(seed []model.MerchantRecord) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*model.MerchantRecord)}

	for _, rec := range seed {
		if err := r.Add(rec); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Add registers a canonical merchant and all of its aliases as lookup keys.
// Last write wins on key collision.
func (r *Registry) Add(rec model.MerchantRecord) error {
	if strings.TrimSpace(rec.Name) == "" {
		return common.NewUserError("merchant name is required", common.ErrInvalidAlias)
	}
	for _, alias := range rec.Aliases {
		if strings.TrimSpace(alias) == "" {
			return common.NewUserError("merchant "+rec.Name+" has an empty alias", common.ErrInvalidAlias)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := rec
	r.byKey[canonicalKey(rec.Name)] = &stored
	for _, alias := range rec.Aliases {
		r.byKey[normalizeKey(alias)] = &stored
	}

	return nil
}

// Find performs an exact normalized lookup. Unknown merchants are not an
// error; the second return reports whether the merchant exists.
func (r *Registry) Find(query string) (model.MerchantRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec := r.lookup(query); rec != nil {
		return *rec, true
	}
	return model.MerchantRecord{}, false
}

// lookup resolves a query to a record. Caller must hold at least a read lock.
func (r *Registry) lookup(query string) *model.MerchantRecord {
	if rec, ok := r.byKey[normalizeKey(query)]; ok {
		return rec
	}
	// Canonical keys have whitespace stripped, so "D Mart" still resolves.
	if rec, ok := r.byKey[canonicalKey(query)]; ok {
		return rec
	}
	return nil
}

// RecordObservation increments a merchant's observed frequency and refreshes
// its last-seen timestamp. Unknown merchants are a no-op.
func (r *Registry) RecordObservation(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec := r.lookup(name); rec != nil {
		rec.Frequency++
		rec.LastSeen = time.Now()
	}
}

// SuggestCategory returns the category of a known merchant.
func (r *Registry) SuggestCategory(name string) (string, bool) {
	rec, ok := r.Find(name)
	if !ok {
		return "", false
	}
	return rec.Category, true
}

// Search returns merchants ranked against the query, highest score first.
// Queries shorter than two characters return nothing.
func (r *Registry) Search(query string, limit int) []model.MerchantRecord {
	q := normalizeKey(query)
	if len(q) < 2 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		rec   model.MerchantRecord
		score float64
	}

	keysByName := make(map[string][]string, len(r.byKey))
	for key, rec := range r.byKey {
		keysByName[rec.Name] = append(keysByName[rec.Name], key)
	}

	seen := make(map[string]bool)
	var results []scored

	for _, rec := range r.byKey {
		if seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true

		name := strings.ToLower(rec.Name)
		lengthGap := float64(len(name) - len(q))

		var score float64
		switch {
		case name == q:
			score = scoreExact
		case strings.HasPrefix(name, q):
			score = scorePrefixBase - scorePrefixDecay*lengthGap
		case strings.Contains(name, q):
			score = scoreSubstringBase - scoreSubstringDecay*lengthGap
		case anyContains(keysByName[rec.Name], q):
			score = scoreAliasContains
		default:
			if sim := tokenPrefixSimilarity(q, name); sim > tokenSimilarityMin {
				score = sim * scoreTokenWeight
			}
		}

		score += float64(rec.Frequency) * frequencyBonus

		if score > 0 {
			results = append(results, scored{rec: *rec, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	records := make([]model.MerchantRecord, len(results))
	for i, s := range results {
		records[i] = s.rec
	}
	return records
}

// ByCategory returns every merchant in the given category.
func (r *Registry) ByCategory(category string) []model.MerchantRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var records []model.MerchantRecord
	for _, rec := range r.byKey {
		if rec.Category == category && !seen[rec.Name] {
			seen[rec.Name] = true
			records = append(records, *rec)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

// Frequent returns the most frequently observed merchants, highest first.
func (r *Registry) Frequent(limit int) []model.MerchantRecord {
	records := r.Export()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Frequency > records[j].Frequency
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// Export returns a snapshot of every canonical merchant record.
func (r *Registry) Export() []model.MerchantRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	records := make([]model.MerchantRecord, 0, len(r.byKey))
	for _, rec := range r.byKey {
		if !seen[rec.Name] {
			seen[rec.Name] = true
			records = append(records, *rec)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

func anyContains(keys []string, q string) bool {
	for _, key := range keys {
		if strings.Contains(key, q) {
			return true
		}
	}
	return false
}

// tokenPrefixSimilarity is the fraction of query words that prefix-match
// some word of the merchant name.
func tokenPrefixSimilarity(query, name string) float64 {
	queryWords := strings.Fields(query)
	nameWords := strings.Fields(name)
	if len(queryWords) == 0 {
		return 0
	}

	matched := 0
	for _, qw := range queryWords {
		for _, nw := range nameWords {
			if strings.HasPrefix(nw, qw) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(queryWords))
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// NormalizeName collapses whitespace and strips punctuation from a raw
// counterparty string for loose comparisons.
func NormalizeName(name string) string {
	n := strings.ToLower(name)
	n = strings.Join(strings.Fields(n), " ")
	return nonWordRe.ReplaceAllString(n, "")
}

// SuggestMatch finds the first candidate whose normalized form equals or
// contains (either direction) the normalized input.
func SuggestMatch(input string, candidates []string) (string, bool) {
	normalized := NormalizeName(input)

	for _, candidate := range candidates {
		nc := NormalizeName(candidate)
		if nc == normalized {
			return candidate, true
		}
		if normalized != "" && (strings.Contains(nc, normalized) || strings.Contains(normalized, nc)) {
			return candidate, true
		}
	}

	return "", false
}
