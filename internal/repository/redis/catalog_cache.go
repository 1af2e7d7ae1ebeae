package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

const catalogKeyPrefix = "catalog:"

// CachedCatalog is a read-through cache over a CatalogRepository for the
// listing reads. Cache errors are logged and the underlying store is used.
type CachedCatalog struct {
	next   repository.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog creates a read-through cache in front of next.
func NewCachedCatalog(next repository.CatalogRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	return &CachedCatalog{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) ListOpenVendors(ctx context.Context) ([]domain.Vendor, error) {
	return readThrough(ctx, c, "vendors:open", c.next.ListOpenVendors)
}

func (c *CachedCatalog) ListMenu(ctx context.Context, vendorID int64) ([]domain.MenuItem, error) {
	return readThrough(ctx, c, fmt.Sprintf("menu:%d", vendorID), func(ctx context.Context) ([]domain.MenuItem, error) {
		return c.next.ListMenu(ctx, vendorID)
	})
}

func (c *CachedCatalog) ListLaundryServices(ctx context.Context) ([]domain.LaundryService, error) {
	return readThrough(ctx, c, "laundry_services", c.next.ListLaundryServices)
}

// GetMenuItem is not cached; it prices cart additions.
func (c *CachedCatalog) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return c.next.GetMenuItem(ctx, id)
}

// GetLaundryService is not cached; it prices laundry orders.
func (c *CachedCatalog) GetLaundryService(ctx context.Context, id int64) (*domain.LaundryService, error) {
	return c.next.GetLaundryService(ctx, id)
}

// Invalidate drops every cached catalog listing.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, catalogKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan catalog: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del catalog: %w", err)
	}
	return nil
}

func readThrough[T any](ctx context.Context, c *CachedCatalog, key string, load func(context.Context) (T, error)) (T, error) {
	key = catalogKeyPrefix + key

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt catalog cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "catalog cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "catalog cache write failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	return value, nil
}
