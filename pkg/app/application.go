package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fleetbook/pkg/config"
	"fleetbook/pkg/contracts"
	"fleetbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// Application assembles the HTTP server for a service: health endpoints
// behind minimal middleware, domain endpoints behind the full stack.
type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.RequesterRateLimiter
	healthHandler    http.Handler
	appHandler       http.Handler
	onShutdown       []func()
}

func NewApplication(cfg *config.Config, mongoClient *mongo.Client, handlers ...contracts.Handler) *Application {
	a := &Application{cfg: cfg}
	a.setHealthHandler(mongoClient)
	a.setAppHandler(handlers...)
	a.setAppServer()
	return a
}

// OnShutdown registers a hook to run during graceful shutdown, after the
// HTTP server stops accepting requests.
func (a *Application) OnShutdown(fn func()) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) setHealthHandler(mongoClient *mongo.Client) {
	healthRouter := httprouter.New()
	NewHealthHandler(mongoClient, a.cfg.Log).RegisterRoutes(healthRouter)

	var handler http.Handler = healthRouter
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.healthHandler = handler

	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(handlers ...contracts.Handler) {
	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewRequesterRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.DefaultRequesterExtractor,
		a.cfg.Log,
	)

	var handler http.Handler = appRouter
	handler = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(handler)
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.RequesterRateLimit(a.rateLimiter)(handler)
	handler = middleware.ContentTypeValidation(a.cfg.Log)(handler)
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.appHandler = handler

	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	for _, fn := range a.onShutdown {
		fn()
	}
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.Log.Info("Server stopped gracefully")
}
