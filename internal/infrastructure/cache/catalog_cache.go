// Package cache provides the Redis-backed cache for evaluated storefront
// catalog responses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	infraconfig "github.com/casecraft/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// optionsKeyPrefix namespaces all evaluated-options entries
	optionsKeyPrefix = "catalog:options:"
	// scanBatchSize bounds each SCAN page during invalidation
	scanBatchSize = 100

	defaultCacheTTL = 10 * time.Minute
)

// NewRedisClient creates a Redis client from configuration and verifies the
// connection.
func NewRedisClient(cfg infraconfig.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// CatalogCache stores evaluated storefront option payloads in Redis. Entries
// are keyed by product plus a digest of the customer's current selections, so
// identical configurator states share a cache slot across instances.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// CatalogCacheOption is a functional option for configuring CatalogCache
type CatalogCacheOption func(*CatalogCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) CatalogCacheOption {
	return func(c *CatalogCache) {
		c.logger = logger
	}
}

// WithTTL sets the entry TTL
func WithTTL(ttl time.Duration) CatalogCacheOption {
	return func(c *CatalogCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCatalogCache creates a catalog cache over an existing Redis client.
// The caller retains ownership of the client.
func NewCatalogCache(client *redis.Client, opts ...CatalogCacheOption) *CatalogCache {
	c := &CatalogCache{
		client: client,
		ttl:    defaultCacheTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OptionsKey builds a deterministic cache key for a product and selection
// state. Selections are sorted before hashing so map iteration order cannot
// produce different keys for the same state.
func OptionsKey(productID uuid.UUID, selections map[uuid.UUID]uuid.UUID) string {
	pairs := make([]string, 0, len(selections))
	for groupID, itemID := range selections {
		pairs = append(pairs, groupID.String()+"="+itemID.String())
	}
	sort.Strings(pairs)

	h := sha256.New()
	for _, p := range pairs {
		h.Write([]byte(p))
		h.Write([]byte{';'})
	}

	return optionsKeyPrefix + productID.String() + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

// GetOptions returns the cached payload for the key, or nil on a miss.
func (c *CatalogCache) GetOptions(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("catalog cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	c.logger.Debug("catalog cache hit", zap.String("key", key))
	return data, nil
}

// SetOptions stores the payload under the key with the configured TTL.
func (c *CatalogCache) SetOptions(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	return nil
}

// InvalidateAll drops every evaluated-options entry. Option groups are
// global, so any catalog change can alter visibility or pricing for every
// product; the next read repopulates from the database (last writer wins).
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, optionsKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan catalog cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete catalog cache keys: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("catalog cache invalidated", zap.Int("deleted", deleted))
	return nil
}
