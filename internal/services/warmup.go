package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
)

// CacheWarmupService pre-populates the search cache with the first page of
// each high-traffic category so the first user after a deploy or an
// invalidation does not pay the cold-corpus cost.
type CacheWarmupService struct {
	log              *logger.Logger
	componentService ComponentService
	categories       []string
	pageSize         int
}

func NewCacheWarmupService(baseLog *logger.Logger, componentService ComponentService, categories []string, pageSize int) *CacheWarmupService {
	return &CacheWarmupService{
		log:              baseLog.With("service", "CacheWarmupService"),
		componentService: componentService,
		categories:       categories,
		pageSize:         pageSize,
	}
}

// Warm loads page 1 for every configured category concurrently. A single
// failed category fails the whole warmup; callers log and continue, since
// warmth is a latency optimization, not a correctness requirement.
func (ws *CacheWarmupService) Warm(ctx context.Context) error {
	if len(ws.categories) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, category := range ws.categories {
		category := category
		g.Go(func() error {
			_, err := ws.componentService.Search(gctx, nil, catalog.Criteria{Category: category}, 1, ws.pageSize, nil)
			if err != nil {
				return fmt.Errorf("warm category %q: %w", category, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	ws.log.Info("Search cache warmed", "categories", len(ws.categories))
	return nil
}
