package catalog

import (
	"sort"
	"strings"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// Sortable fields.
const (
	SortByReferencePrice = "referencePrice"
	SortByPartNumber     = "partNumber"
	SortByQualityLevel   = "qualityLevel"
	SortByTotalDose      = "totalDose"
)

type Sort struct {
	Field      string
	Descending bool
}

// Facets summarizes the distinct values present in a filtered result set,
// deduplicated and lexicographically sorted. They drive follow-on filter
// dropdowns, so they are always derived from the filtered set, never from
// the whole corpus.
type Facets struct {
	Manufacturers []string `json:"manufacturers"`
	Categories    []string `json:"categories"`
	QualityLevels []string `json:"quality_levels"`
}

type Page struct {
	Items    []types.Component `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Facets   Facets            `json:"facets"`
}

// Engine composes the filter predicate with sorting, pagination and facet
// derivation over an in-memory corpus snapshot.
type Engine struct {
	defaultPageSize int
	maxPageSize     int
}

func NewEngine(defaultPageSize, maxPageSize int) Engine {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	return Engine{defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// Query filters the corpus, sorts stably, and returns the requested page
// with facets for the filtered set. Invalid page or pageSize values are
// clamped rather than rejected so stale UI query state keeps working.
func (e Engine) Query(corpus []types.Component, cr Criteria, page, pageSize int, s *Sort) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = e.defaultPageSize
	}
	if pageSize > e.maxPageSize {
		pageSize = e.maxPageSize
	}

	filtered := make([]types.Component, 0, len(corpus))
	for _, c := range corpus {
		if Matches(c, cr) {
			filtered = append(filtered, c)
		}
	}

	if s != nil {
		sortComponents(filtered, *s)
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Items:    filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		Facets:   deriveFacets(filtered),
	}
}

// stable sort: equal keys keep their corpus order
func sortComponents(items []types.Component, s Sort) {
	less := lessFunc(s.Field)
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if s.Descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func lessFunc(field string) func(a, b types.Component) bool {
	switch field {
	case SortByReferencePrice:
		return func(a, b types.Component) bool { return a.ReferencePrice < b.ReferencePrice }
	case SortByPartNumber:
		return func(a, b types.Component) bool { return a.PartNumber < b.PartNumber }
	case SortByQualityLevel:
		return func(a, b types.Component) bool {
			return types.QualityLevelRank(a.QualityLevel) < types.QualityLevelRank(b.QualityLevel)
		}
	case SortByTotalDose:
		return func(a, b types.Component) bool {
			var av, bv float64
			if a.TotalDose != nil {
				av = *a.TotalDose
			}
			if b.TotalDose != nil {
				bv = *b.TotalDose
			}
			return av < bv
		}
	default:
		return nil
	}
}

func deriveFacets(filtered []types.Component) Facets {
	manufacturers := map[string]struct{}{}
	categories := map[string]struct{}{}
	qualityLevels := map[string]struct{}{}
	for _, c := range filtered {
		if c.Manufacturer != "" {
			manufacturers[c.Manufacturer] = struct{}{}
		}
		if c.MainCategory != "" {
			categories[c.MainCategory] = struct{}{}
		}
		if c.QualityLevel != "" {
			qualityLevels[c.QualityLevel] = struct{}{}
		}
	}
	return Facets{
		Manufacturers: sortedKeys(manufacturers),
		Categories:    sortedKeys(categories),
		QualityLevels: sortedKeys(qualityLevels),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Suggestion is a typed autocomplete entry for the search box.
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Suggest produces up to limit suggestions for a partial search term,
// splitting the budget roughly 60/20/20 between matching parts, categories
// and manufacturers. Terms shorter than two characters yield nothing.
func Suggest(corpus []types.Component, term string, limit int) []Suggestion {
	term = strings.ToLower(strings.TrimSpace(term))
	if len([]rune(term)) < 2 || limit < 1 {
		return []Suggestion{}
	}

	partBudget := limit * 6 / 10
	if partBudget < 1 {
		partBudget = 1
	}
	sideBudget := limit * 2 / 10
	if sideBudget < 1 {
		sideBudget = 1
	}

	suggestions := make([]Suggestion, 0, limit)
	for _, c := range corpus {
		if len(suggestions) >= partBudget {
			break
		}
		if strings.Contains(strings.ToLower(c.PartNumber), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			label := c.PartNumber
			if c.Description != "" {
				label = c.PartNumber + " - " + c.Description
			}
			suggestions = append(suggestions, Suggestion{Type: "component", Value: c.PartNumber, Label: label})
		}
	}

	facets := deriveFacets(corpus)
	count := 0
	for _, cat := range facets.Categories {
		if count >= sideBudget {
			break
		}
		if strings.Contains(strings.ToLower(cat), term) {
			suggestions = append(suggestions, Suggestion{Type: "category", Value: cat, Label: cat})
			count++
		}
	}
	count = 0
	for _, mfg := range facets.Manufacturers {
		if count >= sideBudget {
			break
		}
		if strings.Contains(strings.ToLower(mfg), term) {
			suggestions = append(suggestions, Suggestion{Type: "manufacturer", Value: mfg, Label: mfg})
			count++
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
