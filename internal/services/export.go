package services

import (
	"fmt"

	"github.com/kyle-1207/components-plat-sub002/internal/genealogy"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// MissingValue is the placeholder the downstream report formatter expects
// for absent scalars. The existing UI keys on the literal "--", so it must
// not change.
const MissingValue = "--"

var componentExportHeader = []string{
	"part_number",
	"manufacturer",
	"main_category",
	"sub_category",
	"package",
	"quality_level",
	"lifecycle",
	"reference_price",
	"total_dose_krad",
	"description",
}

// ComponentExportRows renders a result set into rows with a stable column
// order for the external CSV/report formatter. Zero price is the no-quote
// sentinel and exports as missing.
func ComponentExportRows(items []types.Component) ([]string, [][]string) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		price := MissingValue
		if c.HasQuote() {
			price = fmt.Sprintf("%.2f", c.ReferencePrice)
		}
		dose := MissingValue
		if c.TotalDose != nil {
			dose = fmt.Sprintf("%g", *c.TotalDose)
		}
		rows = append(rows, []string{
			orMissing(c.PartNumber),
			orMissing(c.Manufacturer),
			orMissing(c.MainCategory),
			orMissing(c.SubCategory),
			orMissing(c.Package),
			orMissing(c.QualityLevel),
			orMissing(c.Lifecycle),
			price,
			dose,
			orMissing(c.Description),
		})
	}
	return componentExportHeader, rows
}

var chainExportHeader = []string{
	"stage",
	"date",
	"location",
	"operator",
	"operation",
	"documents",
	"source_section",
}

// ChainExportRows renders an assembled chain, preserving stage order.
func ChainExportRows(stages []genealogy.ChainStage) ([]string, [][]string) {
	rows := make([][]string, 0, len(stages))
	for _, s := range stages {
		date := MissingValue
		if !s.Date.IsZero() {
			date = s.Date.UTC().Format("2006-01-02")
		}
		docs := MissingValue
		if len(s.Documents) > 0 {
			docs = s.Documents[0]
			for _, d := range s.Documents[1:] {
				docs += "; " + d
			}
		}
		rows = append(rows, []string{
			orMissing(s.StageName),
			date,
			orMissing(s.Location),
			orMissing(s.Operator),
			orMissing(s.Operation),
			docs,
			orMissing(s.SourceSection),
		})
	}
	return chainExportHeader, rows
}

func orMissing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}
