package catalog

import (
	"strconv"
	"strings"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// Matches decides whether a component satisfies every constraint in the
// criteria. It is pure and total: no input makes it panic, and a missing or
// malformed component field fails only the constraint that needs it.
func Matches(c types.Component, cr Criteria) bool {
	if !matchesSearch(c, cr.Search) {
		return false
	}
	if cr.Category != "" && c.MainCategory != cr.Category {
		return false
	}
	if cr.SubCategory != "" && c.SubCategory != cr.SubCategory {
		return false
	}
	if cr.Manufacturer != "" && c.Manufacturer != cr.Manufacturer {
		return false
	}
	if cr.QualityLevel != "" && c.QualityLevel != cr.QualityLevel {
		return false
	}
	if cr.Lifecycle != "" && c.Lifecycle != cr.Lifecycle {
		return false
	}
	if !cr.PriceRange.Empty() {
		// Zero price means "no quote", which cannot satisfy a price filter.
		if !c.HasQuote() || !cr.PriceRange.Contains(c.ReferencePrice) {
			return false
		}
	}
	if !cr.TotalDoseRange.Empty() {
		if c.TotalDose == nil || !cr.TotalDoseRange.Contains(*c.TotalDose) {
			return false
		}
	}
	for name, rng := range cr.ParameterRanges {
		if rng.Empty() {
			continue
		}
		v, ok := numericParameter(c, name)
		if !ok || !rng.Contains(v) {
			return false
		}
	}
	return true
}

func matchesSearch(c types.Component, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{
		c.PartNumber,
		c.Manufacturer,
		c.Description,
		c.FunctionalPerformance,
		c.MainCategory,
		c.SubCategory,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// numericParameter pulls a free-form parameter and parses its leading
// numeric portion, so values like "3.3 V" or "72MHz" still filter.
func numericParameter(c types.Component, name string) (float64, bool) {
	s, ok := c.Parameter(name)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == '+' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
