package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	redisclient "github.com/kyle-1207/components-plat-sub002/internal/clients/redis"
	"github.com/kyle-1207/components-plat-sub002/internal/data"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

type ComponentService interface {
	Search(ctx context.Context, tx *gorm.DB, cr catalog.Criteria, page, pageSize int, sort *catalog.Sort) (*catalog.Page, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Component, error)
	DistinctValues(ctx context.Context, tx *gorm.DB, field string) ([]string, error)
	Suggest(ctx context.Context, tx *gorm.DB, term string, limit int) ([]catalog.Suggestion, error)
	EnsureSeed(ctx context.Context, tx *gorm.DB) (int, error)
	InvalidateSearchCache(ctx context.Context) (int, error)
	InvalidateAllCache(ctx context.Context) (int, error)
}

type componentService struct {
	db            *gorm.DB
	log           *logger.Logger
	componentRepo repos.ComponentRepo
	engine        catalog.Engine
	cache         redisclient.QueryCache // nil when caching is disabled
	keyPrefix     string
}

func NewComponentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	componentRepo repos.ComponentRepo,
	engine catalog.Engine,
	cache redisclient.QueryCache,
	keyPrefix string,
) ComponentService {
	return &componentService{
		db:            db,
		log:           baseLog.With("service", "ComponentService"),
		componentRepo: componentRepo,
		engine:        engine,
		cache:         cache,
		keyPrefix:     keyPrefix,
	}
}

// Search runs the faceted query over a full corpus snapshot, read-through
// cached per normalized query. Cached pages stay valid until an explicit
// invalidation signal; there is no TTL contract.
func (cs *componentService) Search(ctx context.Context, tx *gorm.DB, cr catalog.Criteria, page, pageSize int, sort *catalog.Sort) (*catalog.Page, error) {
	var key string
	if cs.cache != nil {
		key = redisclient.SearchKey(cs.keyPrefix, cr, page, pageSize, sort)
		if cached, ok := cs.cache.GetPage(ctx, key); ok {
			return cached, nil
		}
	}

	corpus, err := cs.componentRepo.List(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	result := cs.engine.Query(corpus, cr, page, pageSize, sort)

	if cs.cache != nil {
		if err := cs.cache.SetPage(ctx, key, &result); err != nil {
			cs.log.Warn("Cache write failed", "key", key, "error", err)
		}
	}
	return &result, nil
}

func (cs *componentService) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Component, error) {
	return cs.componentRepo.GetByID(ctx, tx, id)
}

func (cs *componentService) DistinctValues(ctx context.Context, tx *gorm.DB, field string) ([]string, error) {
	return cs.componentRepo.DistinctValues(ctx, tx, field)
}

func (cs *componentService) Suggest(ctx context.Context, tx *gorm.DB, term string, limit int) ([]catalog.Suggestion, error) {
	corpus, err := cs.componentRepo.List(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return catalog.Suggest(corpus, term, limit), nil
}

// EnsureSeed imports the built-in mock catalog when the component table is
// empty, so a fresh deployment has something to search.
func (cs *componentService) EnsureSeed(ctx context.Context, tx *gorm.DB) (int, error) {
	n, err := cs.componentRepo.Count(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("count components: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	seed := data.SeedComponents()
	batch := make([]*types.Component, len(seed))
	for i := range seed {
		batch[i] = &seed[i]
	}
	if _, err := cs.componentRepo.Create(ctx, tx, batch); err != nil {
		return 0, fmt.Errorf("seed components: %w", err)
	}
	cs.log.Info("Seeded component catalog", "count", len(batch))
	return len(batch), nil
}

// InvalidateSearchCache is the operator-facing invalidation signal, used
// after bulk re-imports.
func (cs *componentService) InvalidateSearchCache(ctx context.Context) (int, error) {
	if cs.cache == nil {
		return 0, nil
	}
	return cs.cache.InvalidateSearch(ctx)
}

// InvalidateAllCache drops every key under the platform prefix, not just
// search pages. Used when the whole keyspace is suspect, e.g. after a schema
// change.
func (cs *componentService) InvalidateAllCache(ctx context.Context) (int, error) {
	if cs.cache == nil {
		return 0, nil
	}
	return cs.cache.InvalidateAll(ctx)
}
