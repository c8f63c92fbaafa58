// Package cache keeps hot catalog entries in redis in front of the product store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/config"
	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "product:"

// NewClient builds a redis client from the cache section
func NewClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// ProductCache read-through cache over a catalog.Repository. Redis failures
// are logged and fall back to the store. Writes go to the store first and
// then evict the key.
type ProductCache struct {
	next   catalog.Repository
	client redis.UniversalClient
	ttl    time.Duration
}

func NewProductCache(next catalog.Repository, client redis.UniversalClient, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{next: next, client: client, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

type cachedImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type cachedProduct struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       string        `json:"price"`
	Stock       int           `json:"stock"`
	Brand       string        `json:"brand"`
	Category    string        `json:"category"`
	Type        string        `json:"type"`
	Images      []cachedImage `json:"images"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func encode(p *catalog.Product) ([]byte, error) {
	dto := p.ToDTO()
	images := make([]cachedImage, 0, len(dto.Images))
	for _, img := range dto.Images {
		images = append(images, cachedImage{PublicID: img.PublicID, URL: img.URL})
	}
	return json.Marshal(cachedProduct{
		ID: dto.ID, Name: dto.Name, Description: dto.Description,
		Price: dto.Price.String(), Stock: dto.Stock,
		Brand: dto.Brand, Category: dto.Category, Type: dto.Type,
		Images: images, CreatedAt: dto.CreatedAt, UpdatedAt: dto.UpdatedAt,
	})
}

func decode(data []byte) (*catalog.Product, error) {
	var c cachedProduct
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	price, err := shared.MoneyFromString(c.Price)
	if err != nil {
		return nil, err
	}
	images := make([]catalog.Image, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, catalog.Image{PublicID: img.PublicID, URL: img.URL})
	}
	return catalog.RebuildFromDTO(catalog.ProductDTO{
		ID: c.ID, Name: c.Name, Description: c.Description,
		Price: price, Stock: c.Stock,
		Brand: c.Brand, Category: c.Category, Type: c.Type,
		Images: images, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}), nil
}

func (c *ProductCache) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		if p, decodeErr := decode(data); decodeErr == nil {
			return p, nil
		}
		c.evict(ctx, id)
	case !errors.Is(err, redis.Nil):
		logger.FromContext(ctx).Warn("Product cache read failed", zap.String("product_id", id), zap.Error(err))
	}

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, p)
	return p, nil
}

// FindByIDs serves hits with one MGET and loads the misses from the store
func (c *ProductCache) FindByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		logger.FromContext(ctx).Warn("Product cache batch read failed", zap.Int("count", len(ids)), zap.Error(err))
		return c.next.FindByIDs(ctx, ids)
	}

	found := make([]*catalog.Product, 0, len(ids))
	var missing []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		p, err := decode([]byte(raw))
		if err != nil {
			missing = append(missing, ids[i])
			continue
		}
		found = append(found, p)
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := c.next.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range loaded {
		c.fill(ctx, p)
	}
	return append(found, loaded...), nil
}

func (c *ProductCache) DecrementStock(ctx context.Context, id string, quantity int) error {
	if err := c.next.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *ProductCache) Save(ctx context.Context, p *catalog.Product) error {
	if err := c.next.Save(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID())
	return nil
}

// Ping used by the readiness probe
func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// fill skips reads made inside a unit of work, which may see uncommitted rows
func (c *ProductCache) fill(ctx context.Context, p *catalog.Product) {
	if persistence.InUnitOfWork(ctx) {
		return
	}
	data, err := encode(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(p.ID()), data, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("Product cache write failed", zap.String("product_id", p.ID()), zap.Error(err))
	}
}

// invalidate evicts id after the surrounding transaction commits
func (c *ProductCache) invalidate(ctx context.Context, id string) {
	persistence.AfterCommit(ctx, func(ctx context.Context) {
		c.evict(ctx, id)
	})
}

func (c *ProductCache) evict(ctx context.Context, id string) {
	if err := c.client.Del(context.WithoutCancel(ctx), key(id)).Err(); err != nil {
		logger.FromContext(ctx).Warn("Product cache eviction failed", zap.String("product_id", id), zap.Error(err))
	}
}

var _ catalog.Repository = (*ProductCache)(nil)
