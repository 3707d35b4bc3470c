package genealogy

import (
	"fmt"
	"time"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// Source sections, listed in the canonical chain order. The assembled chain
// keeps this section order first and the within-section insertion order
// second; it never re-sorts globally by date, because cross-section dates on
// imported or backfilled records can be inconsistent and reordering would
// misrepresent provenance.
const (
	SectionMaterial            = "materialTraceability"
	SectionProduction          = "productionTraceability"
	SectionTest                = "testTraceability"
	SectionSupplierTiers       = "supplierTiers"
	SectionLogistics           = "logisticsTraceability"
	SectionInventory           = "inventoryTraceability"
	SectionProjectApplications = "projectApplications"
	SectionSystemIntegration   = "systemIntegration"
	SectionMaintenance         = "maintenanceHistory"
)

// ChainStage is one life-cycle event in an assembled traceability chain.
// SourceSection points back at the sub-document the stage was flattened
// from.
type ChainStage struct {
	StageName     string    `json:"stage_name"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Operator      string    `json:"operator"`
	Operation     string    `json:"operation"`
	Documents     []string  `json:"documents"`
	SourceSection string    `json:"source_section"`
}

// BuildChain flattens the genealogy sections of a record into an ordered
// stage sequence. Absent sections contribute no stages. Supplier tiers are
// the only section subject to depth truncation: with a configured
// traceabilityDepth of k, tiers beyond k are omitted.
func BuildChain(rec types.TraceabilityRecord) []ChainStage {
	stages := []ChainStage{}

	for _, m := range rec.BatchTraceability.MaterialTraceability {
		stages = append(stages, ChainStage{
			StageName:     "Material receipt",
			Date:          m.ReceivedDate,
			Location:      m.SupplierName,
			Operation:     fmt.Sprintf("%s (%s), lot %s", m.MaterialType, m.MaterialGrade, m.SupplierLot),
			Documents:     nonEmpty(m.CertificateNumber, m.InspectionResults),
			SourceSection: SectionMaterial,
		})
	}

	for _, p := range rec.BatchTraceability.ProductionTraceability {
		stages = append(stages, ChainStage{
			StageName:     "Process step",
			Date:          p.ProcessDate,
			Location:      p.Equipment,
			Operator:      p.Operator,
			Operation:     p.ProcessStep,
			Documents:     append([]string{}, p.QualityCheckResults...),
			SourceSection: SectionProduction,
		})
	}

	for _, t := range rec.BatchTraceability.TestTraceability {
		stages = append(stages, ChainStage{
			StageName:     "Test execution",
			Date:          t.TestDate,
			Location:      t.TestEquipment,
			Operator:      t.TestOperator,
			Operation:     fmt.Sprintf("%s per %s", t.TestType, t.TestStandard),
			Documents:     nonEmpty(t.TestReport),
			SourceSection: SectionTest,
		})
	}

	depth := types.ClampTraceabilityDepth(rec.QueryConfiguration.TraceabilityDepth)
	for _, tier := range rec.SupplyChainTraceability.SupplierTiers {
		if depth > 0 && tier.Tier > depth {
			continue
		}
		stages = append(stages, ChainStage{
			StageName:     fmt.Sprintf("Tier %d supplier", tier.Tier),
			Date:          tier.RelationshipStart,
			Location:      tier.Location,
			Operation:     fmt.Sprintf("%s (%s)", tier.SupplierName, tier.RelationshipStatus),
			Documents:     nonEmpty(tier.CertificationLevel),
			SourceSection: SectionSupplierTiers,
		})
	}

	for _, s := range rec.SupplyChainTraceability.LogisticsTraceability {
		stages = append(stages, ChainStage{
			StageName:     "Shipment",
			Date:          s.ShipmentDate,
			Location:      fmt.Sprintf("%s -> %s", s.FromLocation, s.ToLocation),
			Operator:      s.Carrier,
			Operation:     fmt.Sprintf("Shipment %s, received %s", s.ShipmentID, s.Condition),
			Documents:     append([]string{}, s.HandlingHistory...),
			SourceSection: SectionLogistics,
		})
	}

	for _, m := range rec.SupplyChainTraceability.InventoryTraceability.MovementHistory {
		stages = append(stages, ChainStage{
			StageName:     "Inventory movement",
			Date:          m.MovementDate,
			Location:      fmt.Sprintf("%s -> %s", m.FromLocation, m.ToLocation),
			Operator:      m.AuthorizedBy,
			Operation:     fmt.Sprintf("%s: %s", m.MovementType, m.Reason),
			Documents:     []string{},
			SourceSection: SectionInventory,
		})
	}

	for _, p := range rec.ApplicationTraceability.ProjectApplications {
		stages = append(stages, ChainStage{
			StageName:     "Project application",
			Date:          p.ApplicationDate,
			Location:      p.ApplicationLocation,
			Operator:      p.ResponsibleEngineer,
			Operation:     fmt.Sprintf("%s (%s)", p.ProjectName, p.ApplicationStatus),
			Documents:     []string{},
			SourceSection: SectionProjectApplications,
		})
	}

	for _, s := range rec.ApplicationTraceability.SystemIntegration {
		stages = append(stages, ChainStage{
			StageName:     "System integration",
			Date:          s.IntegrationDate,
			Location:      s.SystemName,
			Operation:     s.SystemFunction,
			Documents:     []string{},
			SourceSection: SectionSystemIntegration,
		})
	}

	for _, m := range rec.ApplicationTraceability.MaintenanceHistory {
		stages = append(stages, ChainStage{
			StageName:     "Maintenance",
			Date:          m.MaintenanceDate,
			Operator:      m.MaintenanceBy,
			Operation:     fmt.Sprintf("%s: %s", m.MaintenanceType, m.MaintenanceDescription),
			Documents:     nonEmpty(m.MaintenanceResults),
			SourceSection: SectionMaintenance,
		})
	}

	return stages
}

func nonEmpty(values ...string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
