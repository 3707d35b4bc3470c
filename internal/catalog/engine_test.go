package catalog

import (
	"fmt"
	"testing"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

func priceCorpus(n int) []types.Component {
	corpus := make([]types.Component, 0, n)
	for i := 0; i < n; i++ {
		corpus = append(corpus, types.Component{
			PartNumber:     fmt.Sprintf("PN-%03d", i),
			Manufacturer:   fmt.Sprintf("Maker %d", i%3),
			MainCategory:   "模拟单片集成电路",
			QualityLevel:   types.QualityIndustrial,
			ReferencePrice: float64(i + 1),
		})
	}
	return corpus
}

func TestQueryCategoryFilter(t *testing.T) {
	corpus := []types.Component{
		{PartNumber: "A1", MainCategory: "数字单片集成电路", Manufacturer: "ST"},
		{PartNumber: "A2", MainCategory: "数字单片集成电路", Manufacturer: "Xilinx"},
		{PartNumber: "B1", MainCategory: "模拟单片集成电路", Manufacturer: "ADI"},
	}
	e := NewEngine(20, 200)

	page := e.Query(corpus, Criteria{Category: "数字单片集成电路"}, 1, 20, nil)
	if page.Total != 2 {
		t.Fatalf("Total = %d, want 2", page.Total)
	}
	for _, item := range page.Items {
		if item.MainCategory != "数字单片集成电路" {
			t.Errorf("unexpected category %q in result", item.MainCategory)
		}
	}
}

func TestQueryPriceDescPagination(t *testing.T) {
	corpus := priceCorpus(25)
	e := NewEngine(20, 200)
	sort := &Sort{Field: SortByReferencePrice, Descending: true}

	page1 := e.Query(corpus, Criteria{}, 1, 10, sort)
	if page1.Total != 25 {
		t.Fatalf("Total = %d, want 25", page1.Total)
	}
	if len(page1.Items) != 10 {
		t.Fatalf("page 1 size = %d, want 10", len(page1.Items))
	}
	if page1.Items[0].ReferencePrice != 25 {
		t.Errorf("page 1 starts at price %v, want 25", page1.Items[0].ReferencePrice)
	}

	page3 := e.Query(corpus, Criteria{}, 3, 10, sort)
	if len(page3.Items) != 5 {
		t.Fatalf("page 3 size = %d, want 5", len(page3.Items))
	}
	if last := page3.Items[len(page3.Items)-1].ReferencePrice; last != 1 {
		t.Errorf("last item price = %v, want 1", last)
	}

	// No item may appear on two pages and every item must appear once.
	seen := map[string]bool{}
	for p := 1; p <= 3; p++ {
		for _, item := range e.Query(corpus, Criteria{}, p, 10, sort).Items {
			if seen[item.PartNumber] {
				t.Fatalf("%s appears on more than one page", item.PartNumber)
			}
			seen[item.PartNumber] = true
		}
	}
	if len(seen) != 25 {
		t.Fatalf("pages cover %d items, want 25", len(seen))
	}
}

func TestQueryClampsPageArguments(t *testing.T) {
	corpus := priceCorpus(5)
	e := NewEngine(20, 200)

	cases := []struct {
		name     string
		page     int
		pageSize int
		wantPage int
		wantSize int
	}{
		{"zero page", 0, 10, 1, 10},
		{"negative page", -3, 10, 1, 10},
		{"zero size falls back to default", 1, 0, 1, 20},
		{"oversized size clamps to max", 1, 100000, 1, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := e.Query(corpus, Criteria{}, tc.page, tc.pageSize, nil)
			if page.Page != tc.wantPage || page.PageSize != tc.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d",
					page.Page, page.PageSize, tc.wantPage, tc.wantSize)
			}
		})
	}

	past := e.Query(corpus, Criteria{}, 99, 10, nil)
	if len(past.Items) != 0 || past.Total != 5 {
		t.Errorf("page past the end: items=%d total=%d, want 0 and 5", len(past.Items), past.Total)
	}
}

func TestQueryFacetsFromFilteredSet(t *testing.T) {
	corpus := []types.Component{
		{PartNumber: "A1", MainCategory: "数字单片集成电路", Manufacturer: "Xilinx", QualityLevel: types.QualityAerospace},
		{PartNumber: "A2", MainCategory: "数字单片集成电路", Manufacturer: "ST", QualityLevel: types.QualityIndustrial},
		{PartNumber: "B1", MainCategory: "模拟单片集成电路", Manufacturer: "ADI", QualityLevel: types.QualityMilitary},
	}
	e := NewEngine(20, 200)

	page := e.Query(corpus, Criteria{Category: "数字单片集成电路"}, 1, 1, nil)
	// Facets describe the whole filtered set, not just the returned page,
	// and never include values only present outside the filter.
	wantMfg := []string{"ST", "Xilinx"}
	if len(page.Facets.Manufacturers) != len(wantMfg) {
		t.Fatalf("Manufacturers = %v, want %v", page.Facets.Manufacturers, wantMfg)
	}
	for i, m := range wantMfg {
		if page.Facets.Manufacturers[i] != m {
			t.Errorf("Manufacturers[%d] = %q, want %q (sorted)", i, page.Facets.Manufacturers[i], m)
		}
	}
	for _, m := range page.Facets.Manufacturers {
		if m == "ADI" {
			t.Errorf("facet includes %q from outside the filtered set", m)
		}
	}
}

func TestQueryStableSortKeepsCorpusOrder(t *testing.T) {
	corpus := []types.Component{
		{PartNumber: "FIRST", ReferencePrice: 5},
		{PartNumber: "SECOND", ReferencePrice: 5},
		{PartNumber: "THIRD", ReferencePrice: 5},
	}
	e := NewEngine(20, 200)
	page := e.Query(corpus, Criteria{}, 1, 20, &Sort{Field: SortByReferencePrice})
	for i, want := range []string{"FIRST", "SECOND", "THIRD"} {
		if page.Items[i].PartNumber != want {
			t.Fatalf("equal-key order broken: Items[%d] = %s, want %s", i, page.Items[i].PartNumber, want)
		}
	}
}

func TestQueryQualityLevelOrder(t *testing.T) {
	corpus := []types.Component{
		{PartNumber: "AERO", QualityLevel: types.QualityAerospace},
		{PartNumber: "CONS", QualityLevel: types.QualityConsumer},
		{PartNumber: "MIL", QualityLevel: types.QualityMilitary},
	}
	e := NewEngine(20, 200)
	page := e.Query(corpus, Criteria{}, 1, 20, &Sort{Field: SortByQualityLevel})
	for i, want := range []string{"CONS", "MIL", "AERO"} {
		if page.Items[i].PartNumber != want {
			t.Fatalf("Items[%d] = %s, want %s", i, page.Items[i].PartNumber, want)
		}
	}
}

func TestSuggest(t *testing.T) {
	corpus := []types.Component{
		{PartNumber: "STM32F103C8T6", Manufacturer: "STMicroelectronics", Description: "Cortex-M3 MCU", MainCategory: "数字单片集成电路"},
		{PartNumber: "STM32F103", Manufacturer: "STMicroelectronics", MainCategory: "数字单片集成电路"},
		{PartNumber: "LM324N", Manufacturer: "Texas Instruments", MainCategory: "模拟单片集成电路"},
	}

	if got := Suggest(corpus, "s", 10); len(got) != 0 {
		t.Errorf("single-character term should yield nothing, got %d", len(got))
	}

	got := Suggest(corpus, "stm", 10)
	if len(got) == 0 {
		t.Fatalf("expected suggestions for %q", "stm")
	}
	foundPart, foundMfg := false, false
	for _, s := range got {
		switch s.Type {
		case "component":
			if s.Value == "STM32F103C8T6" {
				foundPart = true
			}
		case "manufacturer":
			if s.Value == "STMicroelectronics" {
				foundMfg = true
			}
		}
	}
	if !foundPart || !foundMfg {
		t.Errorf("missing suggestion kinds: part=%v manufacturer=%v in %+v", foundPart, foundMfg, got)
	}

	if got := Suggest(corpus, "stm", 1); len(got) > 1 {
		t.Errorf("limit 1 returned %d suggestions", len(got))
	}
}
