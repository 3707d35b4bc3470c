package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/genealogy"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

type TraceabilityService interface {
	Get(ctx context.Context, tx *gorm.DB, traceabilityID string) (*types.TraceabilityRecord, error)
	Create(ctx context.Context, tx *gorm.DB, rec *types.TraceabilityRecord) (*types.TraceabilityRecord, error)
	Chain(ctx context.Context, tx *gorm.DB, traceabilityID string) ([]genealogy.ChainStage, *genealogy.Summary, error)
	ListByTarget(ctx context.Context, tx *gorm.DB, targetType, targetValue string) ([]types.TraceabilityRecord, error)
}

type traceabilityService struct {
	db               *gorm.DB
	log              *logger.Logger
	traceabilityRepo repos.TraceabilityRepo
}

func NewTraceabilityService(db *gorm.DB, baseLog *logger.Logger, traceabilityRepo repos.TraceabilityRepo) TraceabilityService {
	return &traceabilityService{
		db:               db,
		log:              baseLog.With("service", "TraceabilityService"),
		traceabilityRepo: traceabilityRepo,
	}
}

func (ts *traceabilityService) Get(ctx context.Context, tx *gorm.DB, traceabilityID string) (*types.TraceabilityRecord, error) {
	return ts.traceabilityRepo.Get(ctx, tx, traceabilityID)
}

// Create normalizes and persists a new traceability record. The derived
// analysis block is recomputed from the genealogy content before the write,
// so stored records always carry a summary consistent with their sections.
// Records are immutable once persisted.
func (ts *traceabilityService) Create(ctx context.Context, tx *gorm.DB, rec *types.TraceabilityRecord) (*types.TraceabilityRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil traceability record")
	}
	if strings.TrimSpace(rec.QueryTarget.TargetValue) == "" {
		return nil, fmt.Errorf("query target value required")
	}
	if rec.TraceabilityID == "" {
		rec.TraceabilityID = "TRC-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if rec.QueryDate.IsZero() {
		rec.QueryDate = time.Now().UTC()
	}
	rec.QueryConfiguration.TraceabilityDepth = types.ClampTraceabilityDepth(rec.QueryConfiguration.TraceabilityDepth)
	rec.QueryResults.ResultCompleteness = clampPercent(rec.QueryResults.ResultCompleteness)
	rec.QueryResults.ResultConfidence = clampPercent(rec.QueryResults.ResultConfidence)

	summary := genealogy.Score(*rec)
	rec.TraceabilityAnalysis.CompletenessAssessment.OverallCompleteness = summary.Completeness
	rec.TraceabilityAnalysis.CompletenessAssessment.MissingInformation = summary.MissingSections
	rec.TraceabilityAnalysis.RiskIdentification.OverallRiskLevel = summary.RiskLevel
	rec.TraceabilityAnalysis.ComplianceCheck.ComplianceStatus = summary.ComplianceStatus

	if err := ts.traceabilityRepo.Put(ctx, tx, rec); err != nil {
		return nil, err
	}
	ts.log.Info("Traceability record created",
		"traceability_id", rec.TraceabilityID,
		"target_type", rec.QueryTarget.TargetType,
		"target_value", rec.QueryTarget.TargetValue,
		"completeness", summary.Completeness,
	)
	return rec, nil
}

// Chain assembles the ordered life-cycle chain plus its derived summary for
// one record.
func (ts *traceabilityService) Chain(ctx context.Context, tx *gorm.DB, traceabilityID string) ([]genealogy.ChainStage, *genealogy.Summary, error) {
	rec, err := ts.traceabilityRepo.Get(ctx, tx, traceabilityID)
	if err != nil {
		return nil, nil, err
	}
	stages := genealogy.BuildChain(*rec)
	summary := genealogy.Score(*rec)
	return stages, &summary, nil
}

func (ts *traceabilityService) ListByTarget(ctx context.Context, tx *gorm.DB, targetType, targetValue string) ([]types.TraceabilityRecord, error) {
	return ts.traceabilityRepo.ListByTarget(ctx, tx, targetType, targetValue)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
