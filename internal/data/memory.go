package data

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// MemoryComponentRepo is an in-memory corpus provider. It backs tests and
// the DB_DRIVER=memory mode; the tx parameter of the repo contract is
// accepted and ignored.
type MemoryComponentRepo struct {
	mu    sync.RWMutex
	items []types.Component
}

func NewMemoryComponentRepo(seed []types.Component) *MemoryComponentRepo {
	items := make([]types.Component, len(seed))
	copy(items, seed)
	return &MemoryComponentRepo{items: items}
}

func (m *MemoryComponentRepo) Create(ctx context.Context, _ *gorm.DB, components []*types.Component) ([]*types.Component, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range components {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		m.items = append(m.items, *c)
	}
	return components, nil
}

func (m *MemoryComponentRepo) List(ctx context.Context, _ *gorm.DB) ([]types.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Component, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryComponentRepo) GetByID(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*types.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.items {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (m *MemoryComponentRepo) DistinctValues(ctx context.Context, _ *gorm.DB, field string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := map[string]struct{}{}
	for _, c := range m.items {
		var v string
		switch field {
		case "manufacturer":
			v = c.Manufacturer
		case "category":
			v = c.MainCategory
		case "subCategory":
			v = c.SubCategory
		case "qualityLevel":
			v = c.QualityLevel
		case "lifecycle":
			v = c.Lifecycle
		case "package":
			v = c.Package
		}
		if v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryComponentRepo) Count(ctx context.Context, _ *gorm.DB) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}

// MemoryTraceabilityRepo is the in-memory counterpart of the traceability
// document store. Records are append-only; a duplicate ID is a conflict.
type MemoryTraceabilityRepo struct {
	mu      sync.RWMutex
	records map[string]types.TraceabilityRecord
	order   []string
}

func NewMemoryTraceabilityRepo() *MemoryTraceabilityRepo {
	return &MemoryTraceabilityRepo{records: map[string]types.TraceabilityRecord{}}
}

func (m *MemoryTraceabilityRepo) Get(ctx context.Context, _ *gorm.DB, traceabilityID string) (*types.TraceabilityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[traceabilityID]
	if !ok {
		return nil, repos.ErrNotFound
	}
	return &rec, nil
}

func (m *MemoryTraceabilityRepo) Put(ctx context.Context, _ *gorm.DB, rec *types.TraceabilityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.TraceabilityID]; exists {
		return repos.ErrDuplicateID
	}
	m.records[rec.TraceabilityID] = *rec
	m.order = append(m.order, rec.TraceabilityID)
	return nil
}

func (m *MemoryTraceabilityRepo) ListByTarget(ctx context.Context, _ *gorm.DB, targetType, targetValue string) ([]types.TraceabilityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []types.TraceabilityRecord{}
	for _, id := range m.order {
		rec := m.records[id]
		if rec.QueryTarget.TargetValue != targetValue {
			continue
		}
		if targetType != "" && rec.QueryTarget.TargetType != targetType {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QueryDate.After(out[j].QueryDate)
	})
	return out, nil
}
