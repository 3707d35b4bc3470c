package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// ComponentRepo is the corpus provider backing the catalog. List returns the
// full corpus snapshot in insertion order; the faceted query engine does the
// filtering so that predicate semantics stay in one place.
type ComponentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, components []*types.Component) ([]*types.Component, error)
	List(ctx context.Context, tx *gorm.DB) ([]types.Component, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Component, error)
	DistinctValues(ctx context.Context, tx *gorm.DB, field string) ([]string, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type componentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComponentRepo(db *gorm.DB, baseLog *logger.Logger) ComponentRepo {
	return &componentRepo{db: db, log: baseLog.With("repo", "ComponentRepo")}
}

// distinctColumns whitelists the fields DistinctValues may touch; anything
// else would let query-string input reach SQL identifiers.
var distinctColumns = map[string]string{
	"manufacturer": "manufacturer",
	"category":     "main_category",
	"subCategory":  "sub_category",
	"qualityLevel": "quality_level",
	"lifecycle":    "lifecycle",
	"package":      "package",
}

func (cr *componentRepo) Create(ctx context.Context, tx *gorm.DB, components []*types.Component) ([]*types.Component, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(components) == 0 {
		return []*types.Component{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&components).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return components, nil
}

func (cr *componentRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Component, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []types.Component
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return results, nil
}

func (cr *componentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Component, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Component
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStorage(err)
	}
	return &result, nil
}

func (cr *componentRepo) DistinctValues(ctx context.Context, tx *gorm.DB, field string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	column, ok := distinctColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported distinct field %q", field)
	}
	var values []string
	if err := transaction.WithContext(ctx).
		Model(&types.Component{}).
		Where(column+" <> ''").
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return values, nil
}

func (cr *componentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var n int64
	if err := transaction.WithContext(ctx).Model(&types.Component{}).Count(&n).Error; err != nil {
		return 0, wrapStorage(err)
	}
	return n, nil
}

func wrapStorage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
