package genealogy

import (
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// The five genealogy sections that count toward completeness.
const sectionCount = 5

// Section display names used in missing-information reporting.
const (
	NameComponentGenealogy      = "componentGenealogy"
	NameBatchTraceability       = "batchTraceability"
	NameQualityHistory          = "qualityHistory"
	NameSupplyChainTraceability = "supplyChainTraceability"
	NameApplicationTraceability = "applicationTraceability"
)

// Summary is the derived quality view of one traceability record.
//
// RiskAssessed distinguishes an explicit "low" finding from the
// low-confidence default used when the record carries no identified risks;
// callers branching on RiskLevel alone would conflate the two.
type Summary struct {
	Completeness     float64  `json:"completeness"`
	RiskLevel        string   `json:"risk_level"`
	RiskAssessed     bool     `json:"risk_assessed"`
	ComplianceStatus string   `json:"compliance_status"`
	Confidence       float64  `json:"confidence"`
	MissingSections  []string `json:"missing_sections"`
}

// Score derives completeness, risk and compliance from a record.
//
// Completeness is the share of the five genealogy sections that carry at
// least one populated leaf, scaled to 0-100. Adding data to an empty
// section can only raise it.
func Score(rec types.TraceabilityRecord) Summary {
	missing := []string{}
	populated := 0

	for _, section := range []struct {
		name string
		ok   bool
	}{
		{NameComponentGenealogy, rec.ComponentGenealogy.Populated()},
		{NameBatchTraceability, rec.BatchTraceability.Populated()},
		{NameQualityHistory, rec.QualityHistory.Populated()},
		{NameSupplyChainTraceability, rec.SupplyChainTraceability.Populated()},
		{NameApplicationTraceability, rec.ApplicationTraceability.Populated()},
	} {
		if section.ok {
			populated++
		} else {
			missing = append(missing, section.name)
		}
	}

	return Summary{
		Completeness:     float64(populated) / sectionCount * 100,
		RiskLevel:        overallRisk(rec.TraceabilityAnalysis.RiskIdentification),
		RiskAssessed:     len(rec.TraceabilityAnalysis.RiskIdentification.IdentifiedRisks) > 0,
		ComplianceStatus: complianceStatus(rec.TraceabilityAnalysis.ComplianceCheck),
		Confidence:       rec.QueryResults.ResultConfidence,
		MissingSections:  missing,
	}
}

// overallRisk is the maximum severity among the identified risks. An empty
// list falls back to low; the RiskAssessed flag marks that fallback.
func overallRisk(ri types.RiskIdentification) string {
	level := types.RiskLow
	for _, r := range ri.IdentifiedRisks {
		if types.RiskLevelRank(r.RiskLevel) > types.RiskLevelRank(level) {
			level = r.RiskLevel
		}
	}
	return level
}

// complianceStatus reports non_compliant whenever concrete non-compliance
// issues exist, even if the stated status disagrees; manually maintained
// status fields go stale.
func complianceStatus(cc types.ComplianceCheck) string {
	if len(cc.NonComplianceIssues) > 0 {
		return types.ComplianceNonCompliant
	}
	if cc.ComplianceStatus == "" {
		return types.ComplianceUnknown
	}
	return cc.ComplianceStatus
}
