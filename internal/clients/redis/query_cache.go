package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/utils"
)

// QueryCache is a read-through cache for search result pages. Entries have
// no TTL by default: stale results are acceptable until an explicit
// invalidation signal arrives (operators clear the cache after bulk
// re-imports), and there is no other staleness guarantee to honor.
type QueryCache interface {
	GetPage(ctx context.Context, key string) (*catalog.Page, bool)
	SetPage(ctx context.Context, key string, page *catalog.Page) error
	InvalidateSearch(ctx context.Context) (int, error)
	InvalidateAll(ctx context.Context) (int, error)
	Close() error
}

type queryCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewQueryCache connects to Redis at REDIS_ADDR. Callers treat a nil cache
// as "caching disabled"; construction fails rather than degrading silently
// when an address is configured but unreachable.
func NewQueryCache(log *logger.Logger, keyPrefix string) (QueryCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if keyPrefix == "" {
		keyPrefix = "catalog"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttlSeconds := utils.GetEnvAsInt("CACHE_TTL_SECONDS", 0, log)
	return &queryCache{
		log:    log.With("service", "QueryCache"),
		rdb:    rdb,
		prefix: keyPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (qc *queryCache) GetPage(ctx context.Context, key string) (*catalog.Page, bool) {
	raw, err := qc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			qc.log.Warn("Cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var page catalog.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		qc.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = qc.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &page, true
}

func (qc *queryCache) SetPage(ctx context.Context, key string, page *catalog.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cached page: %w", err)
	}
	if err := qc.rdb.Set(ctx, key, raw, qc.ttl).Err(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// InvalidateSearch drops every cached search page. This is the explicit
// invalidation signal operators trigger after a bulk re-import.
func (qc *queryCache) InvalidateSearch(ctx context.Context) (int, error) {
	return qc.deletePattern(ctx, qc.prefix+":search:*")
}

func (qc *queryCache) InvalidateAll(ctx context.Context) (int, error) {
	return qc.deletePattern(ctx, qc.prefix+":*")
}

func (qc *queryCache) Close() error {
	return qc.rdb.Close()
}

// deletePattern walks the keyspace with SCAN instead of KEYS so a large
// cache does not block the server.
func (qc *queryCache) deletePattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := qc.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := qc.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("del: %w", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	qc.log.Info("Cache pattern invalidated", "pattern", pattern, "deleted", deleted)
	return deleted, nil
}

// SearchKey derives a stable cache key from normalized query inputs: the
// same criteria always hash to the same key regardless of parameter order.
func SearchKey(prefix string, cr catalog.Criteria, page, pageSize int, s *catalog.Sort) string {
	parts := map[string]string{
		"search":       cr.Search,
		"category":     cr.Category,
		"subCategory":  cr.SubCategory,
		"manufacturer": cr.Manufacturer,
		"qualityLevel": cr.QualityLevel,
		"lifecycle":    cr.Lifecycle,
		"page":         fmt.Sprint(page),
		"pageSize":     fmt.Sprint(pageSize),
	}
	if cr.PriceRange.Min != nil {
		parts["priceMin"] = fmt.Sprint(*cr.PriceRange.Min)
	}
	if cr.PriceRange.Max != nil {
		parts["priceMax"] = fmt.Sprint(*cr.PriceRange.Max)
	}
	if cr.TotalDoseRange.Min != nil {
		parts["totalDoseMin"] = fmt.Sprint(*cr.TotalDoseRange.Min)
	}
	if cr.TotalDoseRange.Max != nil {
		parts["totalDoseMax"] = fmt.Sprint(*cr.TotalDoseRange.Max)
	}
	for name, rng := range cr.ParameterRanges {
		if rng.Min != nil {
			parts["param."+name+"Min"] = fmt.Sprint(*rng.Min)
		}
		if rng.Max != nil {
			parts["param."+name+"Max"] = fmt.Sprint(*rng.Max)
		}
	}
	if s != nil {
		parts["sortBy"] = s.Field
		if s.Descending {
			parts["sortOrder"] = "desc"
		}
	}

	keys := make([]string, 0, len(parts))
	for k := range parts {
		if parts[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(parts[k])
		b.WriteByte('&')
	}
	sum := sha256.Sum256([]byte(b.String()))
	if prefix == "" {
		prefix = "catalog"
	}
	return prefix + ":search:" + hex.EncodeToString(sum[:8])
}
