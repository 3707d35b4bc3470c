package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// NumericRange is an inclusive numeric filter. A nil bound is unbounded on
// that side.
type NumericRange struct {
	Min *float64
	Max *float64
}

func (r NumericRange) Empty() bool {
	return r.Min == nil && r.Max == nil
}

func (r NumericRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Criteria is a filter configuration. Zero values mean "no constraint":
// an all-zero Criteria matches every component. Constraints combine with
// logical AND.
type Criteria struct {
	// Search is a case-insensitive substring match against part number,
	// manufacturer, description, functional performance and both categories.
	Search string

	// Exact-match filters.
	Category     string
	SubCategory  string
	Manufacturer string
	QualityLevel string
	Lifecycle    string

	// Inclusive numeric ranges. PriceRange only matches components with a
	// real quote (reference price zero is the no-quote sentinel).
	PriceRange     NumericRange
	TotalDoseRange NumericRange

	// ParameterRanges filters on free-form technical parameters by name.
	// Values that do not parse as numbers fail the constraint.
	ParameterRanges map[string]NumericRange
}

func (c Criteria) Empty() bool {
	return c.Search == "" && c.Category == "" && c.SubCategory == "" &&
		c.Manufacturer == "" && c.QualityLevel == "" && c.Lifecycle == "" &&
		c.PriceRange.Empty() && c.TotalDoseRange.Empty() && len(c.ParameterRanges) == 0
}

// ParseCriteria decodes the string-encoded query parameter surface. Unknown
// keys are ignored and malformed numbers drop the bound; stale bookmarked
// query strings must degrade, never fail.
func ParseCriteria(q url.Values) Criteria {
	keyword := strings.TrimSpace(q.Get("keyword"))
	if keyword == "" {
		keyword = strings.TrimSpace(q.Get("q"))
	}
	return Criteria{
		ParameterRanges: parseParameterRanges(q),
		Search:       keyword,
		Category:     strings.TrimSpace(q.Get("category")),
		SubCategory:  strings.TrimSpace(q.Get("subCategory")),
		Manufacturer: strings.TrimSpace(q.Get("manufacturer")),
		QualityLevel: strings.TrimSpace(q.Get("qualityLevel")),
		Lifecycle:    strings.TrimSpace(q.Get("lifecycle")),
		PriceRange: NumericRange{
			Min: parseFloat(q.Get("priceMin")),
			Max: parseFloat(q.Get("priceMax")),
		},
		TotalDoseRange: NumericRange{
			Min: parseFloat(q.Get("totalDoseMin")),
			Max: parseFloat(q.Get("totalDoseMax")),
		},
	}
}

// parseParameterRanges decodes free-form parameter filters of the form
// param.<name>Min / param.<name>Max, e.g. param.coreFrequencyMin=50.
// Malformed bounds are dropped like every other numeric parameter.
func parseParameterRanges(q url.Values) map[string]NumericRange {
	var ranges map[string]NumericRange
	for key := range q {
		if !strings.HasPrefix(key, "param.") {
			continue
		}
		rest := strings.TrimPrefix(key, "param.")
		var name string
		isMin := false
		switch {
		case strings.HasSuffix(rest, "Min"):
			name = strings.TrimSuffix(rest, "Min")
			isMin = true
		case strings.HasSuffix(rest, "Max"):
			name = strings.TrimSuffix(rest, "Max")
		default:
			continue
		}
		bound := parseFloat(q.Get(key))
		if name == "" || bound == nil {
			continue
		}
		if ranges == nil {
			ranges = map[string]NumericRange{}
		}
		rng := ranges[name]
		if isMin {
			rng.Min = bound
		} else {
			rng.Max = bound
		}
		ranges[name] = rng
	}
	return ranges
}

// ParsePage clamps any raw page value to a valid 1-indexed page number.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePageSize clamps a raw page size into [1, max], falling back to the
// platform default for anything unusable.
func ParsePageSize(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ParseSort builds a sort spec from sortBy/sortOrder parameters. An empty or
// unrecognized field yields nil (corpus order).
func ParseSort(field, order string) *Sort {
	field = strings.TrimSpace(field)
	switch field {
	case SortByReferencePrice, SortByPartNumber, SortByQualityLevel, SortByTotalDose:
	default:
		return nil
	}
	return &Sort{
		Field:      field,
		Descending: strings.EqualFold(strings.TrimSpace(order), "desc"),
	}
}

func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
