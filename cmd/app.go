package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/api"
	"storefront/application/notification"
	"storefront/config"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 10 * time.Second

type closer struct {
	name string
	fn   func() error
}

// App the HTTP server and the resources it owns
type App struct {
	config     *config.Config
	router     *api.Router
	server     *http.Server
	dispatcher *notification.AsyncDispatcher
	closers    []closer
}

// Run serves until SIGINT/SIGTERM or ctx is done, then drains in-flight
// requests and pending notifications before releasing resources.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/api/v1/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		a.close()
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	return a.Shutdown()
}

// Shutdown stops accepting requests and releases every resource
func (a *App) Shutdown() error {
	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	if err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if a.dispatcher != nil {
		if derr := a.dispatcher.Close(ctx); derr != nil {
			logger.Warn("Pending notifications abandoned", zap.Error(derr))
		}
	}
	a.close()

	logger.Info("Server stopped")
	return err
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(); err != nil {
			logger.Warn("Failed to close resource", zap.String("resource", c.name), zap.Error(err))
		}
	}
	a.closers = nil
}

// Handler exposes the router for in-process tests
func (a *App) Handler() http.Handler {
	return a.router.GetEngine()
}
