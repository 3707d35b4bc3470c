package redis

import (
	"strings"
	"testing"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
)

func TestSearchKeyStable(t *testing.T) {
	min := 1.5
	cr := catalog.Criteria{
		Search:     "stm32",
		Category:   "数字单片集成电路",
		PriceRange: catalog.NumericRange{Min: &min},
	}
	a := SearchKey("catalog", cr, 1, 20, nil)
	b := SearchKey("catalog", cr, 1, 20, nil)
	if a != b {
		t.Fatalf("same query hashed to %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "catalog:search:") {
		t.Fatalf("key %q missing namespace prefix", a)
	}
}

func TestSearchKeyVariesWithInputs(t *testing.T) {
	base := SearchKey("catalog", catalog.Criteria{Search: "stm32"}, 1, 20, nil)
	cases := []struct {
		name string
		key  string
	}{
		{"different term", SearchKey("catalog", catalog.Criteria{Search: "lm324"}, 1, 20, nil)},
		{"different page", SearchKey("catalog", catalog.Criteria{Search: "stm32"}, 2, 20, nil)},
		{"different page size", SearchKey("catalog", catalog.Criteria{Search: "stm32"}, 1, 50, nil)},
		{"with sort", SearchKey("catalog", catalog.Criteria{Search: "stm32"}, 1, 20, &catalog.Sort{Field: catalog.SortByReferencePrice, Descending: true})},
	}
	for _, tc := range cases {
		if tc.key == base {
			t.Errorf("%s produced the same key as the base query", tc.name)
		}
	}
}

func TestSearchKeyIncludesParameterRanges(t *testing.T) {
	min := 50.0
	other := 100.0
	base := SearchKey("catalog", catalog.Criteria{}, 1, 20, nil)
	withRange := SearchKey("catalog", catalog.Criteria{
		ParameterRanges: map[string]catalog.NumericRange{"coreFrequency": {Min: &min}},
	}, 1, 20, nil)
	differentBound := SearchKey("catalog", catalog.Criteria{
		ParameterRanges: map[string]catalog.NumericRange{"coreFrequency": {Min: &other}},
	}, 1, 20, nil)

	if withRange == base {
		t.Fatalf("parameter range did not change the key")
	}
	if withRange == differentBound {
		t.Fatalf("different parameter bounds hashed to the same key")
	}
	if again := SearchKey("catalog", catalog.Criteria{
		ParameterRanges: map[string]catalog.NumericRange{"coreFrequency": {Min: &min}},
	}, 1, 20, nil); again != withRange {
		t.Fatalf("same parameter range hashed to %q and %q", withRange, again)
	}
}

func TestSearchKeyIgnoresEmptyFilters(t *testing.T) {
	// An all-zero criteria and one with explicitly empty strings must hash
	// identically, or cache hit rates collapse on equivalent queries.
	a := SearchKey("catalog", catalog.Criteria{}, 1, 20, nil)
	b := SearchKey("catalog", catalog.Criteria{Search: "", Manufacturer: ""}, 1, 20, nil)
	if a != b {
		t.Fatalf("equivalent empty criteria hashed differently: %q vs %q", a, b)
	}
}

func TestSearchKeyDefaultPrefix(t *testing.T) {
	key := SearchKey("", catalog.Criteria{}, 1, 20, nil)
	if !strings.HasPrefix(key, "catalog:search:") {
		t.Fatalf("empty prefix should fall back to catalog, got %q", key)
	}
}
