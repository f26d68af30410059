package merchant

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistry(SeedCatalog())
	require.NoError(t, err)
	return registry
}

func TestRegistry_Find(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name     string
		query    string
		wantName string
		found    bool
	}{
		{name: "canonical name", query: "zomato", wantName: "Zomato", found: true},
		{name: "case insensitive", query: "ZOMATO", wantName: "Zomato", found: true},
		{name: "alias", query: "amazon.in", wantName: "Amazon", found: true},
		{name: "alias with spaces", query: "D MART", wantName: "DMart", found: true},
		{name: "canonical with spaces stripped", query: "IndiGo Airlines", wantName: "IndiGo Airlines", found: true},
		{name: "unknown merchant", query: "corner shop", found: false},
		{name: "empty query", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := registry.Find(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantName, rec.Name)
			}
		})
	}
}

func TestRegistry_Search(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("short query returns nothing", func(t *testing.T) {
		assert.Empty(t, registry.Search("z", 10))
		assert.Empty(t, registry.Search("", 10))
	})

	t.Run("prefix match ranks first", func(t *testing.T) {
		results := registry.Search("zom", 10)
		require.NotEmpty(t, results)
		assert.Equal(t, "Zomato", results[0].Name)
	})

	t.Run("exact match beats prefix", func(t *testing.T) {
		results := registry.Search("uber", 10)
		require.NotEmpty(t, results)
		assert.Equal(t, "Uber", results[0].Name)
	})

	t.Run("deduplicates by canonical name", func(t *testing.T) {
		results := registry.Search("amazon", 10)
		seen := make(map[string]bool)
		for _, rec := range results {
			assert.False(t, seen[rec.Name], "merchant %s returned twice", rec.Name)
			seen[rec.Name] = true
		}
	})

	t.Run("frequency breaks textual ties", func(t *testing.T) {
		require.NoError(t, registry.Add(model.MerchantRecord{Name: "Cafe One", Category: "food_dining"}))
		require.NoError(t, registry.Add(model.MerchantRecord{Name: "Cafe Two", Category: "food_dining"}))

		registry.RecordObservation("Cafe Two")
		registry.RecordObservation("Cafe Two")

		results := registry.Search("cafe", 10)
		require.GreaterOrEqual(t, len(results), 2)
		assert.Equal(t, "Cafe Two", results[0].Name)
	})

	t.Run("limit truncates", func(t *testing.T) {
		results := registry.Search("ma", 1)
		assert.LessOrEqual(t, len(results), 1)
	})
}

func TestRegistry_RecordObservation(t *testing.T) {
	registry := newTestRegistry(t)

	registry.RecordObservation("Zomato")
	registry.RecordObservation("ZOMATO")

	rec, ok := registry.Find("zomato")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Frequency)
	assert.False(t, rec.LastSeen.IsZero())

	// Unknown merchants are a no-op, not an error.
	registry.RecordObservation("no such merchant")
}

func TestRegistry_Add(t *testing.T) {
	registry := newTestRegistry(t)

	err := registry.Add(model.MerchantRecord{
		Name:     "Blinkit",
		Aliases:  []string{"BLINKIT", "grofers"},
		Category: "groceries",
	})
	require.NoError(t, err)

	rec, ok := registry.Find("grofers")
	require.True(t, ok)
	assert.Equal(t, "Blinkit", rec.Name)

	t.Run("last write wins on key collision", func(t *testing.T) {
		err := registry.Add(model.MerchantRecord{
			Name:     "Grofers Daily",
			Aliases:  []string{"grofers"},
			Category: "groceries",
		})
		require.NoError(t, err)

		rec, ok := registry.Find("grofers")
		require.True(t, ok)
		assert.Equal(t, "Grofers Daily", rec.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := registry.Add(model.MerchantRecord{Name: "  "})
		assert.ErrorIs(t, err, common.ErrInvalidAlias)
	})

	t.Run("empty alias rejected", func(t *testing.T) {
		err := registry.Add(model.MerchantRecord{Name: "Valid", Aliases: []string{""}})
		assert.ErrorIs(t, err, common.ErrInvalidAlias)
	})
}

func TestRegistry_SuggestCategory(t *testing.T) {
	registry := newTestRegistry(t)

	category, ok := registry.SuggestCategory("swiggy")
	require.True(t, ok)
	assert.Equal(t, "food_dining", category)

	_, ok = registry.SuggestCategory("unknown")
	assert.False(t, ok)
}

func TestRegistry_ByCategory(t *testing.T) {
	registry := newTestRegistry(t)

	records := registry.ByCategory("groceries")
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	assert.ElementsMatch(t, []string{"BigBasket", "DMart", "JioMart"}, names)
}

func TestRegistry_Frequent(t *testing.T) {
	registry := newTestRegistry(t)

	registry.RecordObservation("Uber")
	registry.RecordObservation("Uber")
	registry.RecordObservation("Netflix")

	records := registry.Frequent(2)
	require.Len(t, records, 2)
	assert.Equal(t, "Uber", records[0].Name)
	assert.Equal(t, "Netflix", records[1].Name)
}

func TestRegistry_ConcurrentObservations(t *testing.T) {
	registry := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.RecordObservation("Zomato")
			registry.Search("zom", 5)
			registry.Find("swiggy")
		}()
	}
	wg.Wait()

	rec, ok := registry.Find("zomato")
	require.True(t, ok)
	assert.Equal(t, 50, rec.Frequency)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "big bazaar", NormalizeName("  BIG   Bazaar  "))
	assert.Equal(t, "amazonin", NormalizeName("AMAZON.IN"))
}

func TestSuggestMatch(t *testing.T) {
	candidates := []string{"Zomato", "Amazon", "Uber Trip"}

	match, ok := SuggestMatch("ZOMATO", candidates)
	require.True(t, ok)
	assert.Equal(t, "Zomato", match)

	match, ok = SuggestMatch("uber", candidates)
	require.True(t, ok)
	assert.Equal(t, "Uber Trip", match)

	_, ok = SuggestMatch("netflix", candidates)
	assert.False(t, ok)
}
