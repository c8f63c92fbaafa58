package cmd

import (
	"context"
	"fmt"
	"net/http"

	"storefront/api"
	"storefront/api/health"
	apicart "storefront/api/cart"
	apiorder "storefront/api/order"
	apireceipt "storefront/api/receipt"
	apiuser "storefront/api/user"
	cartapp "storefront/application/cart"
	"storefront/application/notification"
	orderapp "storefront/application/order"
	userapp "storefront/application/user"
	"storefront/config"
	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/auth"
	"storefront/infrastructure/cache"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/rdb"
	"storefront/infrastructure/persistence/retry"
	"storefront/infrastructure/persistence/seed"
	"storefront/infrastructure/receipt"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder wires configuration into a runnable App
type AppBuilder struct {
	cfg *config.Config
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// storage repositories and unit of work for one backend
type storage struct {
	products catalog.Repository
	users    user.Repository
	carts    cart.Repository
	orders   order.Repository
	uow      shared.UnitOfWork
	db       *gorm.DB
	pinger   health.Pinger
}

// Build validates the configuration and assembles every component. The
// logger must already be initialized.
func (b *AppBuilder) Build() (*App, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	app := &App{config: b.cfg}

	store, err := b.initStorage()
	if err != nil {
		return nil, err
	}
	if store.db != nil {
		app.closers = append(app.closers, closer{"database", func() error { return rdb.Close(store.db) }})
	}

	if b.cfg.Database.Seed {
		if err := seed.Run(context.Background(), store.uow, store.products, store.users); err != nil {
			app.close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	checks := map[string]health.Pinger{"database": store.pinger}
	products := store.products
	if b.cfg.Cache.Enabled {
		client := cache.NewClient(b.cfg.Cache)
		productCache := cache.NewProductCache(products, client, b.cfg.Cache.TTL)
		products = productCache
		checks["redis"] = productCache
		app.closers = append(app.closers, closer{"redis", client.Close})
		logger.Info("Product cache enabled", zap.String("addr", b.cfg.Cache.Addr))
	}

	renderer := receipt.NewPDFRenderer(b.cfg.Notification.StoreName)
	dispatcher, err := b.initDispatcher(app, store.db, renderer)
	if err != nil {
		app.close()
		return nil, err
	}

	tokens, err := auth.NewTokenService(b.cfg.Auth)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	orderService := orderapp.NewService(orderapp.Dependencies{
		Orders:     store.orders,
		Carts:      store.carts,
		Users:      store.users,
		Products:   products,
		UnitOfWork: store.uow,
		Dispatcher: dispatcher,
		Renderer:   renderer,
	}, orderapp.Options{
		OrderNumberAttempts:  b.cfg.Checkout.OrderNumberAttempts,
		EnforceStock:         b.cfg.Checkout.EnforceStock,
		DefaultPaymentMethod: b.cfg.Checkout.DefaultPaymentMethod,
	})

	router := api.NewRouter(b.cfg, tokens, store.users, api.Controllers{
		Health:  health.NewController(b.cfg, checks),
		Cart:    apicart.NewController(cartapp.NewService(store.carts, products, store.uow)),
		Order:   apiorder.NewController(orderService),
		Receipt: apireceipt.NewController(orderService),
		User:    apiuser.NewController(userapp.NewApplicationService(store.users, store.uow)),
	})
	router.SetupRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}
	return app, nil
}

func (b *AppBuilder) initStorage() (*storage, error) {
	retryConfig := retry.FromAppConfig(b.cfg)

	if b.cfg.Database.Type == config.DatabaseMemory {
		logger.Info("Using in-memory persistence")
		st := memory.NewStore()
		uow := memory.NewUnitOfWork(st)
		uow.SetRetryConfig(retryConfig)
		return &storage{
			products: memory.NewProductRepository(st),
			users:    memory.NewUserRepository(st),
			carts:    memory.NewCartRepository(st),
			orders:   memory.NewOrderRepository(st),
			uow:      uow,
			pinger:   st,
		}, nil
	}

	db, err := OpenDatabase(b.cfg)
	if err != nil {
		return nil, err
	}
	uow := rdb.NewUnitOfWork(db)
	uow.SetRetryConfig(retryConfig)
	return &storage{
		products: rdb.NewProductRepository(db),
		users:    rdb.NewUserRepository(db),
		carts:    rdb.NewCartRepository(db),
		orders:   rdb.NewOrderRepository(db),
		uow:      uow,
		db:       db,
		pinger:   health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx, db) }),
	}, nil
}

// initDispatcher async mode sends from this process; outbox mode leaves
// delivery to cmd/worker.
func (b *AppBuilder) initDispatcher(app *App, db *gorm.DB, renderer notification.ReceiptRenderer) (notification.Dispatcher, error) {
	if b.cfg.Notification.Mode == config.NotificationModeOutbox {
		if db == nil {
			return nil, fmt.Errorf("notification mode outbox requires a relational database")
		}
		logger.Info("Notifications are written to the outbox")
		return rdb.NewOutboxDispatcher(rdb.NewOutboxRepository(db)), nil
	}

	notifier, closeNotifier := NewNotifier(b.cfg, renderer)
	dispatcher := notification.NewAsyncDispatcher(notifier, b.cfg.Notification.Timeout)
	app.dispatcher = dispatcher
	app.closers = append(app.closers, closer{"notifier", closeNotifier})
	logger.Info("Notifications are sent asynchronously", zap.String("transport", b.cfg.Notification.Transport))
	return dispatcher, nil
}
