// Package app assembles the HTTP server: routers, middleware chains, and
// lifecycle. Handlers register themselves through contracts.Handler; the
// application decides which middleware stack wraps them.
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	destinationshandler "trailhead/internal/destinations/handler"
	"trailhead/pkg/config"
	"trailhead/pkg/contracts"
	"trailhead/pkg/middleware"
)

type Application struct {
	cfg         *config.Config
	server      *http.Server
	rateLimiter *middleware.IPRateLimiter
	healthChain http.Handler
	apiChain    http.Handler
	mediaChain  http.Handler
	onShutdown  []func()
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// OnShutdown registers a hook run during graceful shutdown, after the HTTP
// server has stopped accepting requests.
func (a *Application) OnShutdown(fn func()) {
	a.onShutdown = append(a.onShutdown, fn)
}

// SetApp wires the routers. apiHandlers get the full middleware stack;
// mediaHandler gets its own chain with the larger upload body limit.
func (a *Application) SetApp(mediaHandler contracts.Handler, apiHandlers ...contracts.Handler) {
	a.setHealthChain()
	a.setAPIChain(apiHandlers)
	a.setMediaChain(mediaHandler)
	a.setServer()
}

func (a *Application) setHealthChain() {
	healthRouter := httprouter.New()
	healthHandler := destinationshandler.NewHealthHandler(a.cfg.Client.Mongo, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var chain http.Handler = healthRouter
	chain = middleware.RequestLogging(a.cfg.Log)(chain)
	chain = middleware.Recovery(a.cfg.Log)(chain)
	a.healthChain = chain
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAPIChain(handlers []contracts.Handler) {
	apiRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(apiRouter)
	}

	a.rateLimiter = middleware.NewIPRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.cfg.Log,
	)

	// Middleware order: Recovery → Logging → MaxSize → ContentType → RateLimit → Timeout → Router
	var chain http.Handler = apiRouter
	chain = middleware.RequestTimeout(a.cfg.RequestTimeout)(chain)
	chain = middleware.IPRateLimit(a.rateLimiter)(chain)
	chain = middleware.ContentTypeValidation(a.cfg.Log)(chain)
	chain = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(chain)
	chain = middleware.RequestLogging(a.cfg.Log)(chain)
	chain = middleware.Recovery(a.cfg.Log)(chain)
	a.apiChain = chain
	a.cfg.Log.Info("API endpoints configured with full middleware stack")
}

func (a *Application) setMediaChain(mediaHandler contracts.Handler) {
	if mediaHandler == nil {
		return
	}

	mediaRouter := httprouter.New()
	mediaHandler.RegisterRoutes(mediaRouter)

	// Uploads are multipart and larger than JSON bodies; this chain skips
	// content-type validation and uses the upload size limit instead.
	var chain http.Handler = mediaRouter
	chain = middleware.RequestTimeout(a.cfg.RequestTimeout)(chain)
	chain = middleware.IPRateLimit(a.rateLimiter)(chain)
	chain = middleware.MaxRequestSize(int64(a.cfg.MaxUploadMB)<<20 + 1024)(chain)
	chain = middleware.RequestLogging(a.cfg.Log)(chain)
	chain = middleware.Recovery(a.cfg.Log)(chain)
	a.mediaChain = chain
	a.cfg.Log.Info("Media endpoints configured", "max_upload_mb", a.cfg.MaxUploadMB)
}

func (a *Application) setServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthChain)
	mux.Handle("/ready", a.healthChain)
	if a.mediaChain != nil {
		mux.Handle("/api/v1/media", a.mediaChain)
		mux.Handle(a.cfg.MediaBaseURL+"/", a.mediaChain)
	}
	mux.Handle("/", a.apiChain)

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
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server", "error", err)
		}
	}

	a.rateLimiter.Stop()
	for _, fn := range a.onShutdown {
		fn()
	}
	a.cfg.GracefulShutdown()

	a.cfg.Log.Info("Server stopped gracefully")
}
