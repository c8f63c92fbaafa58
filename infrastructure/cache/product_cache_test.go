package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis map-backed stand-in for the few commands the cache issues
type fakeRedis struct {
	redis.UniversalClient
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, k string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[k]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, k string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[k] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			values[i] = v
		}
	}
	return redis.NewSliceResult(values, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) has(k string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[k]
	return ok
}

type countingStore struct {
	catalog.Repository
	finds int
}

func (s *countingStore) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	s.finds++
	return s.Repository.FindByID(ctx, id)
}

func setup(t *testing.T) (*countingStore, context.Context) {
	t.Helper()
	store, _, ctx := setupWithUnitOfWork(t)
	return store, ctx
}

func setupWithUnitOfWork(t *testing.T) (*countingStore, *memory.UnitOfWork, context.Context) {
	t.Helper()
	ctx := context.Background()
	mem := memory.NewStore()
	repo := memory.NewProductRepository(mem)
	for _, dto := range []catalog.ProductDTO{
		{ID: "A", Name: "Dutch Oven", Price: shared.MoneyFromFloat(4999.5), Stock: 3,
			Images: []catalog.Image{{PublicID: "p/a", URL: "https://cdn/a.jpg"}}},
		{ID: "B", Name: "Spatula", Price: shared.MoneyFromFloat(399), Stock: 10},
	} {
		p, err := catalog.NewProduct(dto)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}
	return &countingStore{Repository: repo}, memory.NewUnitOfWork(mem), ctx
}

func TestReadThrough(t *testing.T) {
	store, ctx := setup(t)
	rdb := newFakeRedis()
	c := NewProductCache(store, rdb, time.Minute)

	first, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.True(t, rdb.has("product:A"))

	second, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, store.finds)
	assert.Equal(t, first.Price().String(), second.Price().String())
	assert.Equal(t, "https://cdn/a.jpg", second.PrimaryImageURL())

	_, err = c.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.False(t, rdb.has("product:missing"))
}

func TestWritesEvict(t *testing.T) {
	store, ctx := setup(t)
	rdb := newFakeRedis()
	c := NewProductCache(store, rdb, time.Minute)

	_, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	require.NoError(t, c.DecrementStock(ctx, "A", 2))
	assert.False(t, rdb.has("product:A"))

	p, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock())

	require.NoError(t, p.ChangePrice(shared.MoneyFromFloat(10)))
	require.NoError(t, c.Save(ctx, p))
	assert.False(t, rdb.has("product:A"))

	err = c.DecrementStock(ctx, "A", 5)
	assert.ErrorIs(t, err, shared.ErrOutOfStock)
}

func TestStockChangeEvictsAfterCommit(t *testing.T) {
	store, uow, ctx := setupWithUnitOfWork(t)
	rdb := newFakeRedis()
	c := NewProductCache(store, rdb, time.Minute)

	err := uow.Execute(ctx, func(txCtx context.Context) error {
		if err := c.DecrementStock(txCtx, "A", 2); err != nil {
			return err
		}
		inTx, err := c.FindByID(txCtx, "A")
		require.NoError(t, err)
		assert.Equal(t, 1, inTx.Stock())
		assert.False(t, rdb.has("product:A"), "uncommitted reads stay out of the cache")

		// a reader outside the transaction still sees the committed row
		stale, err := c.FindByID(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, 3, stale.Stock())
		assert.True(t, rdb.has("product:A"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, rdb.has("product:A"))

	p, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock())
}

func TestRolledBackStockChangeKeepsCache(t *testing.T) {
	store, uow, ctx := setupWithUnitOfWork(t)
	rdb := newFakeRedis()
	c := NewProductCache(store, rdb, time.Minute)

	_, err := c.FindByID(ctx, "A")
	require.NoError(t, err)

	err = uow.Execute(ctx, func(txCtx context.Context) error {
		require.NoError(t, c.DecrementStock(txCtx, "A", 1))
		return errors.New("insert orders: value out of range")
	})
	require.Error(t, err)
	assert.True(t, rdb.has("product:A"))

	p, err := c.FindByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock())
}

func TestFindByIDsMixesHitsAndMisses(t *testing.T) {
	store, ctx := setup(t)
	rdb := newFakeRedis()
	c := NewProductCache(store, rdb, time.Minute)

	_, err := c.FindByID(ctx, "A")
	require.NoError(t, err)

	products, err := c.FindByIDs(ctx, []string{"A", "B", "gone"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.True(t, rdb.has("product:B"))
}

func TestRedisOutageFallsBackToStore(t *testing.T) {
	store, ctx := setup(t)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewProductCache(store, client, time.Minute)

	p, err := c.FindByID(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "Spatula", p.Name())

	products, err := c.FindByIDs(ctx, []string{"A", "B"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	assert.NoError(t, c.DecrementStock(ctx, "B", 1))
	assert.Error(t, c.Ping(ctx))
}
