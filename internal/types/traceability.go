package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Target types accepted by a traceability query.
const (
	TargetComponent    = "component"
	TargetBatch        = "batch"
	TargetLot          = "lot"
	TargetSerialNumber = "serial_number"
	TargetProject      = "project"
)

// Risk levels, ordered low < medium < high < critical.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

var riskLevelRank = map[string]int{
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// RiskLevelRank returns the escalation rank of a risk level; unknown levels
// rank below low.
func RiskLevelRank(level string) int {
	return riskLevelRank[level]
}

// Compliance statuses.
const (
	ComplianceCompliant    = "compliant"
	ComplianceNonCompliant = "non_compliant"
	CompliancePartial      = "partial"
	ComplianceUnknown      = "unknown"
)

// Certification statuses.
const (
	CertValid     = "valid"
	CertExpired   = "expired"
	CertSuspended = "suspended"
	CertWithdrawn = "withdrawn"
)

// Supplier relationship statuses.
const (
	RelationshipActive    = "active"
	RelationshipInactive  = "inactive"
	RelationshipSuspended = "suspended"
)

// Project application statuses.
const (
	ApplicationPlanned   = "planned"
	ApplicationInUse     = "in_use"
	ApplicationCompleted = "completed"
	ApplicationRetired   = "retired"
)

// Traceability depth bounds. Depth limits how many supplier tiers the chain
// assembler traverses; zero means no limit was configured.
const (
	MinTraceabilityDepth = 1
	MaxTraceabilityDepth = 10
)

type QueryTarget struct {
	TargetType        string `json:"target_type"`
	TargetValue       string `json:"target_value"`
	TargetDescription string `json:"target_description"`
}

type BasicInfo struct {
	PartNumber   string `json:"part_number"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	Description  string `json:"description"`
}

type DesignChange struct {
	ChangeVersion    string    `json:"change_version"`
	ChangeDate       time.Time `json:"change_date"`
	ChangeReason     string    `json:"change_reason"`
	ChangedBy        string    `json:"changed_by"`
	ImpactAssessment string    `json:"impact_assessment"`
}

type DesignGenealogy struct {
	OriginalDesigner  string         `json:"original_designer"`
	DesignVersion     string         `json:"design_version"`
	DesignDate        time.Time      `json:"design_date"`
	DesignChanges     []DesignChange `json:"design_changes"`
	RelatedComponents []string       `json:"related_components"`
}

type DateInterval struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type ManufacturingGenealogy struct {
	ManufacturingSite    string       `json:"manufacturing_site"`
	ProductionLine       string       `json:"production_line"`
	ManufacturingProcess string       `json:"manufacturing_process"`
	ProcessVersion       string       `json:"process_version"`
	QualityLevel         string       `json:"quality_level"`
	ManufacturingPeriod  DateInterval `json:"manufacturing_period"`
}

type ComponentGenealogy struct {
	BasicInfo              BasicInfo              `json:"basic_info"`
	DesignGenealogy        DesignGenealogy        `json:"design_genealogy"`
	ManufacturingGenealogy ManufacturingGenealogy `json:"manufacturing_genealogy"`
}

type BatchInfo struct {
	BatchNumber    string    `json:"batch_number"`
	LotCode        string    `json:"lot_code"`
	WaferLot       string    `json:"wafer_lot,omitempty"`
	AssemblyLot    string    `json:"assembly_lot,omitempty"`
	TestLot        string    `json:"test_lot,omitempty"`
	Quantity       int       `json:"quantity"`
	ProductionDate time.Time `json:"production_date"`
}

type MaterialReceipt struct {
	MaterialType      string    `json:"material_type"`
	MaterialGrade     string    `json:"material_grade"`
	SupplierName      string    `json:"supplier_name"`
	SupplierLot       string    `json:"supplier_lot"`
	ReceivedDate      time.Time `json:"received_date"`
	InspectionResults string    `json:"inspection_results"`
	CertificateNumber string    `json:"certificate_number"`
}

type ProcessParameter struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	Tolerance string `json:"tolerance"`
}

type ProcessStep struct {
	ProcessStep         string             `json:"process_step"`
	ProcessParameters   []ProcessParameter `json:"process_parameters"`
	Equipment           string             `json:"equipment"`
	Operator            string             `json:"operator"`
	ProcessDate         time.Time          `json:"process_date"`
	ProcessResult       string             `json:"process_result"`
	QualityCheckResults []string           `json:"quality_check_results"`
}

type TestParameter struct {
	Parameter     string `json:"parameter"`
	Specification string `json:"specification"`
	ActualValue   string `json:"actual_value"`
	Result        string `json:"result"`
}

type TestExecution struct {
	TestType       string          `json:"test_type"`
	TestStandard   string          `json:"test_standard"`
	TestParameters []TestParameter `json:"test_parameters"`
	TestEquipment  string          `json:"test_equipment"`
	TestOperator   string          `json:"test_operator"`
	TestDate       time.Time       `json:"test_date"`
	TestReport     string          `json:"test_report"`
}

type BatchTraceability struct {
	BatchInfo              BatchInfo         `json:"batch_info"`
	MaterialTraceability   []MaterialReceipt `json:"material_traceability"`
	ProductionTraceability []ProcessStep     `json:"production_traceability"`
	TestTraceability       []TestExecution   `json:"test_traceability"`
}

type QualityIssue struct {
	IssueID          string     `json:"issue_id"`
	IssueType        string     `json:"issue_type"`
	IssueDescription string     `json:"issue_description"`
	DiscoveryDate    time.Time  `json:"discovery_date"`
	ReportedBy       string     `json:"reported_by"`
	Severity         string     `json:"severity"`
	Status           string     `json:"status"`
	Resolution       string     `json:"resolution,omitempty"`
	ClosureDate      *time.Time `json:"closure_date,omitempty"`
}

type QualityImprovement struct {
	ImprovementID           string    `json:"improvement_id"`
	ImprovementType         string    `json:"improvement_type"`
	ImprovementDescription  string    `json:"improvement_description"`
	ImplementationDate      time.Time `json:"implementation_date"`
	ImplementedBy           string    `json:"implemented_by"`
	EffectivenessAssessment string    `json:"effectiveness_assessment"`
}

type Certification struct {
	CertificationType string    `json:"certification_type"`
	CertificationBody string    `json:"certification_body"`
	CertificateNumber string    `json:"certificate_number"`
	IssueDate         time.Time `json:"issue_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	Status            string    `json:"status"`
}

type QualityHistory struct {
	QualityIssues        []QualityIssue       `json:"quality_issues"`
	QualityImprovements  []QualityImprovement `json:"quality_improvements"`
	CertificationHistory []Certification      `json:"certification_history"`
}

type SupplierTier struct {
	Tier               int       `json:"tier"`
	SupplierName       string    `json:"supplier_name"`
	SupplierCode       string    `json:"supplier_code"`
	SupplierType       string    `json:"supplier_type"`
	Location           string    `json:"location"`
	CertificationLevel string    `json:"certification_level"`
	RelationshipStart  time.Time `json:"relationship_start"`
	RelationshipStatus string    `json:"relationship_status"`
}

type Shipment struct {
	ShipmentID        string    `json:"shipment_id"`
	FromLocation      string    `json:"from_location"`
	ToLocation        string    `json:"to_location"`
	Carrier           string    `json:"carrier"`
	ShipmentDate      time.Time `json:"shipment_date"`
	ReceivedDate      time.Time `json:"received_date"`
	Condition         string    `json:"condition"`
	StorageConditions string    `json:"storage_conditions"`
	HandlingHistory   []string  `json:"handling_history"`
}

type Movement struct {
	MovementType string    `json:"movement_type"`
	MovementDate time.Time `json:"movement_date"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	Reason       string    `json:"reason"`
	AuthorizedBy string    `json:"authorized_by"`
}

type InventoryTraceability struct {
	WarehouseLocation  string     `json:"warehouse_location"`
	StorageDate        time.Time  `json:"storage_date"`
	StorageConditions  string     `json:"storage_conditions"`
	InventoryStatus    string     `json:"inventory_status"`
	LastInventoryCheck time.Time  `json:"last_inventory_check"`
	MovementHistory    []Movement `json:"movement_history"`
}

type SupplyChainTraceability struct {
	SupplierTiers         []SupplierTier        `json:"supplier_tiers"`
	LogisticsTraceability []Shipment            `json:"logistics_traceability"`
	InventoryTraceability InventoryTraceability `json:"inventory_traceability"`
}

type ProjectApplication struct {
	ProjectID           string    `json:"project_id"`
	ProjectName         string    `json:"project_name"`
	ApplicationDate     time.Time `json:"application_date"`
	ApplicationQuantity int       `json:"application_quantity"`
	ApplicationLocation string    `json:"application_location"`
	ResponsibleEngineer string    `json:"responsible_engineer"`
	ApplicationStatus   string    `json:"application_status"`
}

type PerformanceSample struct {
	Parameter       string    `json:"parameter"`
	Value           string    `json:"value"`
	MeasurementDate time.Time `json:"measurement_date"`
}

type SystemIntegration struct {
	SystemID            string              `json:"system_id"`
	SystemName          string              `json:"system_name"`
	IntegrationDate     time.Time           `json:"integration_date"`
	SystemFunction      string              `json:"system_function"`
	OperatingConditions string              `json:"operating_conditions"`
	PerformanceData     []PerformanceSample `json:"performance_data"`
}

type MaintenanceEvent struct {
	MaintenanceID          string    `json:"maintenance_id"`
	MaintenanceType        string    `json:"maintenance_type"`
	MaintenanceDate        time.Time `json:"maintenance_date"`
	MaintenanceDescription string    `json:"maintenance_description"`
	MaintenanceResults     string    `json:"maintenance_results"`
	NextMaintenanceDate    time.Time `json:"next_maintenance_date"`
	MaintenanceBy          string    `json:"maintenance_by"`
}

type ApplicationTraceability struct {
	ProjectApplications []ProjectApplication `json:"project_applications"`
	SystemIntegration   []SystemIntegration  `json:"system_integration"`
	MaintenanceHistory  []MaintenanceEvent   `json:"maintenance_history"`
}

type CompletenessAssessment struct {
	OverallCompleteness float64  `json:"overall_completeness"`
	MissingInformation  []string `json:"missing_information"`
	DataQualityIssues   []string `json:"data_quality_issues"`
	RecommendedActions  []string `json:"recommended_actions"`
}

type IdentifiedRisk struct {
	RiskType        string `json:"risk_type"`
	RiskDescription string `json:"risk_description"`
	RiskLevel       string `json:"risk_level"`
	Mitigation      string `json:"mitigation"`
}

type RiskIdentification struct {
	IdentifiedRisks  []IdentifiedRisk `json:"identified_risks"`
	OverallRiskLevel string           `json:"overall_risk_level"`
}

type ComplianceCheck struct {
	RegulatoryRequirements []string `json:"regulatory_requirements"`
	ComplianceStatus       string   `json:"compliance_status"`
	NonComplianceIssues    []string `json:"non_compliance_issues"`
	CorrectionActions      []string `json:"correction_actions"`
}

type TraceabilityAnalysis struct {
	CompletenessAssessment CompletenessAssessment `json:"completeness_assessment"`
	RiskIdentification     RiskIdentification     `json:"risk_identification"`
	ComplianceCheck        ComplianceCheck        `json:"compliance_check"`
}

type CustomFilter struct {
	FilterType  string `json:"filter_type"`
	FilterValue string `json:"filter_value"`
}

type QueryConfiguration struct {
	TraceabilityDepth      int            `json:"traceability_depth"`
	TimeRange              DateInterval   `json:"time_range"`
	IncludeSuppliers       bool           `json:"include_suppliers"`
	IncludeQualityData     bool           `json:"include_quality_data"`
	IncludeTestData        bool           `json:"include_test_data"`
	IncludeApplicationData bool           `json:"include_application_data"`
	CustomFilters          []CustomFilter `json:"custom_filters"`
}

type QueryResults struct {
	ResultSummary       string   `json:"result_summary"`
	TotalRecordsFound   int      `json:"total_records_found"`
	DataSourcesAccessed []string `json:"data_sources_accessed"`
	QueryExecutionTime  int64    `json:"query_execution_time"`
	ResultCompleteness  float64  `json:"result_completeness"`
	ResultConfidence    float64  `json:"result_confidence"`
}

// TraceabilityRecord is a point-in-time snapshot of one traceability query
// execution. Embedded sequences keep their insertion order, which carries
// the chronological/causal order of the underlying events. Records are
// append-only; later changes to component or batch facts never rewrite a
// persisted record.
type TraceabilityRecord struct {
	TraceabilityID string      `json:"traceability_id"`
	QueryDate      time.Time   `json:"query_date"`
	QueryBy        string      `json:"query_by"`
	QueryTarget    QueryTarget `json:"query_target"`

	ComponentGenealogy      ComponentGenealogy      `json:"component_genealogy"`
	BatchTraceability       BatchTraceability       `json:"batch_traceability"`
	QualityHistory          QualityHistory          `json:"quality_history"`
	SupplyChainTraceability SupplyChainTraceability `json:"supply_chain_traceability"`
	ApplicationTraceability ApplicationTraceability `json:"application_traceability"`

	TraceabilityAnalysis TraceabilityAnalysis `json:"traceability_analysis"`
	QueryConfiguration   QueryConfiguration   `json:"query_configuration"`
	QueryResults         QueryResults         `json:"query_results"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TraceabilityDocument is the persisted shape of a TraceabilityRecord: a few
// indexed scalar columns for lookup plus the full record as a JSONB payload.
type TraceabilityDocument struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TraceabilityID string         `gorm:"column:traceability_id;not null;uniqueIndex" json:"traceability_id"`
	QueryDate      time.Time      `gorm:"column:query_date;not null;index" json:"query_date"`
	QueryBy        string         `gorm:"column:query_by;not null;index" json:"query_by"`
	TargetType     string         `gorm:"column:target_type;index" json:"target_type"`
	TargetValue    string         `gorm:"column:target_value;index" json:"target_value"`
	Document       datatypes.JSON `gorm:"column:document;type:jsonb;not null" json:"document"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (TraceabilityDocument) TableName() string { return "traceability_document" }

// ClampTraceabilityDepth normalizes a configured depth. Zero stays zero
// (no limit); anything else is pulled into [MinTraceabilityDepth,
// MaxTraceabilityDepth].
func ClampTraceabilityDepth(depth int) int {
	if depth == 0 {
		return 0
	}
	if depth < MinTraceabilityDepth {
		return MinTraceabilityDepth
	}
	if depth > MaxTraceabilityDepth {
		return MaxTraceabilityDepth
	}
	return depth
}

// Populated reports whether the section carries at least one meaningful leaf
// value. A section object whose sequences are all empty counts as absent.

func (g ComponentGenealogy) Populated() bool {
	b := g.BasicInfo
	if b.PartNumber != "" || b.Manufacturer != "" || b.Category != "" || b.Description != "" {
		return true
	}
	d := g.DesignGenealogy
	if d.OriginalDesigner != "" || d.DesignVersion != "" || !d.DesignDate.IsZero() ||
		len(d.DesignChanges) > 0 || len(d.RelatedComponents) > 0 {
		return true
	}
	m := g.ManufacturingGenealogy
	return m.ManufacturingSite != "" || m.ProductionLine != "" || m.ManufacturingProcess != "" ||
		m.ProcessVersion != "" || m.QualityLevel != "" ||
		!m.ManufacturingPeriod.StartDate.IsZero() || !m.ManufacturingPeriod.EndDate.IsZero()
}

func (b BatchTraceability) Populated() bool {
	i := b.BatchInfo
	if i.BatchNumber != "" || i.LotCode != "" || i.WaferLot != "" || i.AssemblyLot != "" ||
		i.TestLot != "" || i.Quantity > 0 || !i.ProductionDate.IsZero() {
		return true
	}
	return len(b.MaterialTraceability) > 0 || len(b.ProductionTraceability) > 0 || len(b.TestTraceability) > 0
}

func (q QualityHistory) Populated() bool {
	return len(q.QualityIssues) > 0 || len(q.QualityImprovements) > 0 || len(q.CertificationHistory) > 0
}

func (s SupplyChainTraceability) Populated() bool {
	if len(s.SupplierTiers) > 0 || len(s.LogisticsTraceability) > 0 {
		return true
	}
	inv := s.InventoryTraceability
	return inv.WarehouseLocation != "" || !inv.StorageDate.IsZero() || inv.StorageConditions != "" ||
		inv.InventoryStatus != "" || !inv.LastInventoryCheck.IsZero() || len(inv.MovementHistory) > 0
}

func (a ApplicationTraceability) Populated() bool {
	return len(a.ProjectApplications) > 0 || len(a.SystemIntegration) > 0 || len(a.MaintenanceHistory) > 0
}
