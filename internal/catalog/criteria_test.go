package catalog

import (
	"net/url"
	"testing"
)

func TestParseCriteria(t *testing.T) {
	q := url.Values{}
	q.Set("keyword", " stm32 ")
	q.Set("category", "数字单片集成电路")
	q.Set("qualityLevel", "industrial")
	q.Set("priceMin", "1.5")
	q.Set("priceMax", "not-a-number")
	q.Set("totalDoseMin", "50")
	q.Set("bogus", "ignored")

	cr := ParseCriteria(q)
	if cr.Search != "stm32" {
		t.Errorf("Search = %q, want trimmed %q", cr.Search, "stm32")
	}
	if cr.Category != "数字单片集成电路" || cr.QualityLevel != "industrial" {
		t.Errorf("exact filters not parsed: %+v", cr)
	}
	if cr.PriceRange.Min == nil || *cr.PriceRange.Min != 1.5 {
		t.Errorf("PriceRange.Min = %v, want 1.5", cr.PriceRange.Min)
	}
	if cr.PriceRange.Max != nil {
		t.Errorf("malformed priceMax must drop the bound, got %v", *cr.PriceRange.Max)
	}
	if cr.TotalDoseRange.Min == nil || *cr.TotalDoseRange.Min != 50 {
		t.Errorf("TotalDoseRange.Min = %v, want 50", cr.TotalDoseRange.Min)
	}
}

func TestParseCriteriaParameterRanges(t *testing.T) {
	q := url.Values{}
	q.Set("param.coreFrequencyMin", "50")
	q.Set("param.coreFrequencyMax", "100")
	q.Set("param.tidRatingMin", "not-a-number")
	q.Set("param.Min", "1")
	q.Set("param.supplyVoltage", "3.3")

	cr := ParseCriteria(q)
	rng, ok := cr.ParameterRanges["coreFrequency"]
	if !ok {
		t.Fatalf("coreFrequency range not parsed: %+v", cr.ParameterRanges)
	}
	if rng.Min == nil || *rng.Min != 50 || rng.Max == nil || *rng.Max != 100 {
		t.Errorf("coreFrequency range = %+v, want [50,100]", rng)
	}
	if _, ok := cr.ParameterRanges["tidRating"]; ok {
		t.Errorf("malformed bound must be dropped")
	}
	if len(cr.ParameterRanges) != 1 {
		t.Errorf("ParameterRanges = %+v, want only coreFrequency", cr.ParameterRanges)
	}
}

func TestParseCriteriaWithoutParameterRanges(t *testing.T) {
	if cr := ParseCriteria(url.Values{}); cr.ParameterRanges != nil {
		t.Errorf("ParameterRanges = %+v, want nil when no param filters given", cr.ParameterRanges)
	}
}

func TestParseCriteriaKeywordFallback(t *testing.T) {
	q := url.Values{}
	q.Set("q", "lm324")
	if cr := ParseCriteria(q); cr.Search != "lm324" {
		t.Errorf("Search = %q, want fallback to q parameter", cr.Search)
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"3", 3},
	}
	for _, tc := range cases {
		if got := ParsePage(tc.raw); got != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 20},
		{"junk", 20},
		{"0", 20},
		{"50", 50},
		{"9999", 200},
	}
	for _, tc := range cases {
		if got := ParsePageSize(tc.raw, 20, 200); got != tc.want {
			t.Errorf("ParsePageSize(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	if s := ParseSort("", "desc"); s != nil {
		t.Errorf("empty field must yield nil sort, got %+v", s)
	}
	if s := ParseSort("nonsense", "asc"); s != nil {
		t.Errorf("unknown field must yield nil sort, got %+v", s)
	}
	s := ParseSort(SortByReferencePrice, "DESC")
	if s == nil || s.Field != SortByReferencePrice || !s.Descending {
		t.Errorf("ParseSort(referencePrice, DESC) = %+v", s)
	}
	s = ParseSort(SortByPartNumber, "asc")
	if s == nil || s.Descending {
		t.Errorf("ParseSort(partNumber, asc) = %+v", s)
	}
}
