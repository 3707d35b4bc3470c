package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lifecycle states for a catalog entry.
const (
	LifecycleProducing         = "producing"
	LifecycleEngineeringSample = "engineering-sample"
	LifecycleDiscontinued      = "discontinued"
)

// Quality levels, loosely ordered from consumer up to aerospace. The order
// matters for sorting and risk escalation, not for storage.
const (
	QualityConsumer   = "consumer"
	QualityIndustrial = "industrial"
	QualityAutomotive = "automotive"
	QualityMilitary   = "military"
	QualityAerospace  = "aerospace"
)

var qualityLevelRank = map[string]int{
	QualityConsumer:   1,
	QualityIndustrial: 2,
	QualityAutomotive: 3,
	QualityMilitary:   4,
	QualityAerospace:  5,
}

// QualityLevelRank returns the position of a quality level in the informal
// consumer < industrial < automotive < military < aerospace ordering.
// Unknown levels rank below consumer so they sort first.
func QualityLevelRank(level string) int {
	return qualityLevelRank[level]
}

type Component struct {
	ID                    uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PartNumber            string            `gorm:"column:part_number;not null;index" json:"part_number"`
	Manufacturer          string            `gorm:"column:manufacturer;not null;index" json:"manufacturer"`
	Description           string            `gorm:"column:description" json:"description"`
	FunctionalPerformance string            `gorm:"column:functional_performance" json:"functional_performance"`
	MainCategory          string            `gorm:"column:main_category;index" json:"main_category"`
	SubCategory           string            `gorm:"column:sub_category;index" json:"sub_category"`
	Package               string            `gorm:"column:package" json:"package"`
	QualityLevel          string            `gorm:"column:quality_level;index" json:"quality_level"`
	Lifecycle             string            `gorm:"column:lifecycle;index" json:"lifecycle"`
	ReferencePrice        float64           `gorm:"column:reference_price;not null;default:0" json:"reference_price"`
	TotalDose             *float64          `gorm:"column:total_dose" json:"total_dose,omitempty"`
	Parameters            datatypes.JSONMap `gorm:"column:parameters;type:jsonb" json:"parameters"`
	CreatedAt             time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt             gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Component) TableName() string { return "component" }

// HasQuote reports whether the reference price is a real quote. A zero price
// is the "no quote available" sentinel, not a price of zero.
func (c Component) HasQuote() bool {
	return c.ReferencePrice > 0
}

// Parameter returns the named free-form technical parameter as a string.
// Parameter schemas vary per component family, so values are stringly typed.
func (c Component) Parameter(name string) (string, bool) {
	raw, ok := c.Parameters[name]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}
