package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// TraceabilityRepo is the append-only document store for traceability
// records. Put never updates: each record is a point-in-time snapshot keyed
// by its traceability ID, and a colliding ID is a conflict.
type TraceabilityRepo interface {
	Get(ctx context.Context, tx *gorm.DB, traceabilityID string) (*types.TraceabilityRecord, error)
	Put(ctx context.Context, tx *gorm.DB, rec *types.TraceabilityRecord) error
	ListByTarget(ctx context.Context, tx *gorm.DB, targetType, targetValue string) ([]types.TraceabilityRecord, error)
}

type traceabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTraceabilityRepo(db *gorm.DB, baseLog *logger.Logger) TraceabilityRepo {
	return &traceabilityRepo{db: db, log: baseLog.With("repo", "TraceabilityRepo")}
}

func (tr *traceabilityRepo) Get(ctx context.Context, tx *gorm.DB, traceabilityID string) (*types.TraceabilityRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var row types.TraceabilityDocument
	err := transaction.WithContext(ctx).
		Where("traceability_id = ?", traceabilityID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStorage(err)
	}
	return decodeRecord(row)
}

func (tr *traceabilityRepo) Put(ctx context.Context, tx *gorm.DB, rec *types.TraceabilityRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode traceability record: %w", err)
	}
	row := types.TraceabilityDocument{
		TraceabilityID: rec.TraceabilityID,
		QueryDate:      rec.QueryDate,
		QueryBy:        rec.QueryBy,
		TargetType:     rec.QueryTarget.TargetType,
		TargetValue:    rec.QueryTarget.TargetValue,
		Document:       payload,
	}
	if err := transaction.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateID
		}
		return wrapStorage(err)
	}
	return nil
}

func (tr *traceabilityRepo) ListByTarget(ctx context.Context, tx *gorm.DB, targetType, targetValue string) ([]types.TraceabilityRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var rows []types.TraceabilityDocument
	q := transaction.WithContext(ctx).Where("target_value = ?", targetValue)
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if err := q.Order("query_date DESC").Find(&rows).Error; err != nil {
		return nil, wrapStorage(err)
	}
	records := make([]types.TraceabilityRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeRecord(row)
		if err != nil {
			tr.log.Warn("Skipping undecodable traceability document", "traceability_id", row.TraceabilityID, "error", err)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

func decodeRecord(row types.TraceabilityDocument) (*types.TraceabilityRecord, error) {
	var rec types.TraceabilityRecord
	if err := json.Unmarshal(row.Document, &rec); err != nil {
		return nil, fmt.Errorf("decode traceability record %s: %w", row.TraceabilityID, err)
	}
	rec.CreatedAt = row.CreatedAt
	rec.UpdatedAt = row.UpdatedAt
	return &rec, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
