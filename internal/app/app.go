package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/retail-store-challenge/db"
	"github.com/xenking/retail-store-challenge/internal/catalog"
	"github.com/xenking/retail-store-challenge/internal/domain/store"
	"github.com/xenking/retail-store-challenge/internal/handler"
	"github.com/xenking/retail-store-challenge/pkg/health"
	"github.com/xenking/retail-store-challenge/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, _ *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Catalog: explicit file when configured, embedded default otherwise.
	st, err := loadStore(cfg.CatalogPath)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.Int("products", len(st.ActiveProducts())),
		zap.Int("total_quantity", st.TotalQuantity()),
	)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("catalog", time.Second, catalogCheck(st))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// HTTP handlers.
	h := handler.New(st)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// loadStore builds the store from the configured catalog file, falling back
// to the embedded default catalog.
func loadStore(path string) (*store.Store, error) {
	data := db.DefaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read catalog %s", path)
		}
	}
	return catalog.Load(data)
}

// catalogCheck reports unready while the catalog has no purchasable product.
func catalogCheck(st *store.Store) health.CheckFunc {
	return func(context.Context) error {
		if len(st.ActiveProducts()) == 0 {
			return errors.New("no active products in catalog")
		}
		return nil
	}
}
