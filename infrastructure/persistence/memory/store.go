/*
Package memory is the in-process store behind database.type=memory and the
application tests.

It keeps the same persistence objects as the relational store. A unit of work
takes the transaction lock, copies the committed state, runs against the copy
and swaps it in only when the function succeeds, so a failed checkout leaves
no header, no lines and the cart untouched. Transactions are serialized;
writes outside a transaction take the same lock.
*/
package memory

import (
	"context"
	"sync"

	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/po"
	"storefront/infrastructure/persistence/retry"
)

type cartRecord struct {
	cart  po.CartPO
	items []po.CartItemPO
}

type orderRecord struct {
	header po.OrderPO
	lines  []po.OrderLinePO
}

type state struct {
	products     map[string]po.ProductPO
	users        map[string]po.UserPO
	carts        map[string]cartRecord // by user id
	orders       map[string]orderRecord
	orderNumbers map[string]string // order number -> order id
}

func newState() *state {
	return &state{
		products:     make(map[string]po.ProductPO),
		users:        make(map[string]po.UserPO),
		carts:        make(map[string]cartRecord),
		orders:       make(map[string]orderRecord),
		orderNumbers: make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		v.Images = append([]po.ProductImagePO(nil), v.Images...)
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = cartRecord{cart: v.cart, items: append([]po.CartItemPO(nil), v.items...)}
	}
	for k, v := range s.orders {
		c.orders[k] = orderRecord{header: v.header, lines: append([]po.OrderLinePO(nil), v.lines...)}
	}
	for k, v := range s.orderNumbers {
		c.orderNumbers[k] = v
	}
	return c
}

// Store committed state plus the locks guarding it
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	committed *state
}

func NewStore() *Store {
	return &Store{committed: newState()}
}

type txKey struct{}

type memTx struct {
	store *Store
	work  *state
}

func (s *Store) txFromContext(ctx context.Context) *memTx {
	if tx, ok := ctx.Value(txKey{}).(*memTx); ok && tx.store == s {
		return tx
	}
	return nil
}

// read runs fn against the transaction copy or, outside a unit of work, the committed state
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if tx := s.txFromContext(ctx); tx != nil {
		return fn(tx.work)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

// write runs fn inside the current transaction, or as a single-statement transaction of its own
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if tx := s.txFromContext(ctx); tx != nil {
		return fn(tx.work)
	}
	return s.execute(ctx, func(ctx context.Context) error {
		return fn(s.txFromContext(ctx).work)
	})
}

func (s *Store) execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	txCtx, hooks := persistence.WithCommitHooks(ctx)
	if err := fn(context.WithValue(txCtx, txKey{}, &memTx{store: s, work: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	hooks.Run(ctx)
	return nil
}

// Ping always succeeds; it lets health checks treat every store alike
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// UnitOfWork transactional boundary over a Store
type UnitOfWork struct {
	store       *Store
	retryConfig retry.Config
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store, retryConfig: retry.DefaultConfig}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute joins an enclosing transaction when ctx already carries one
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.store.txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		return u.store.execute(ctx, fn)
	})
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
