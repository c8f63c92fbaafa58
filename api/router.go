package api

import (
	"net/http"

	"storefront/api/cart"
	"storefront/api/health"
	"storefront/api/middleware"
	"storefront/api/order"
	"storefront/api/receipt"
	"storefront/api/user"
	"storefront/config"
	"storefront/domain/shared"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine            *gin.Engine
	config            *config.Config
	tokens            middleware.TokenParser
	users             middleware.UserLookup
	healthController  *health.Controller
	cartController    *cart.Controller
	orderController   *order.Controller
	receiptController *receipt.Controller
	userController    *user.Controller
}

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Health  *health.Controller
	Cart    *cart.Controller
	Order   *order.Controller
	Receipt *receipt.Controller
	User    *user.Controller
}

func NewRouter(cfg *config.Config, tokens middleware.TokenParser, users middleware.UserLookup, controllers Controllers) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// request id first so every later middleware can log it
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:            engine,
		config:            cfg,
		tokens:            tokens,
		users:             users,
		healthController:  controllers.Health,
		cartController:    controllers.Cart,
		orderController:   controllers.Order,
		receiptController: controllers.Receipt,
		userController:    controllers.User,
	}
}

func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	r.healthController.RegisterRoutes(apiGroup)

	authed := apiGroup.Group("", middleware.Authenticate(r.tokens, r.users))
	requireAdmin := middleware.RequireRole(shared.RoleAdmin)
	{
		r.cartController.RegisterRoutes(authed)
		r.orderController.RegisterRoutes(authed, requireAdmin)
		r.receiptController.RegisterRoutes(authed)
		r.userController.RegisterRoutes(authed, requireAdmin)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
