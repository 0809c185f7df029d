package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smokemap/smokemap/internal/adapters/http"
	natsadapter "github.com/smokemap/smokemap/internal/adapters/nats"
	"github.com/smokemap/smokemap/internal/adapters/postgres"
	"github.com/smokemap/smokemap/internal/adapters/provider"
	s3adapter "github.com/smokemap/smokemap/internal/adapters/s3"
	"github.com/smokemap/smokemap/internal/adapters/valkey"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
	"github.com/smokemap/smokemap/internal/pkg/config"
	"github.com/smokemap/smokemap/internal/pkg/localize"
	"github.com/smokemap/smokemap/internal/pkg/logging"
	"github.com/smokemap/smokemap/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("smokemap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("smokemap-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Valkey store backing the spot cache
	store, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer store.Close()

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Providers: static bundle first, then every Korean open-data source
	loc := localize.DefaultEngine()
	norm := provider.NewNormalizer(loc)
	static := provider.NewStaticProvider(cfg.Loader.StaticDataPath, norm)

	var providers []ports.SpotProvider
	for _, src := range provider.DefaultSources() {
		providers = append(providers, provider.NewOpenDataProvider(src, cfg.Loader.ServiceKey, nil, loc))
	}

	// Aggregation pipeline
	aggregator := usecases.NewAggregatorService(static, providers)
	cacheMgr := usecases.NewCacheManager(store,
		time.Duration(cfg.Loader.CacheTTLHours)*time.Hour,
		cfg.Loader.CacheMaxSpots)

	var events ports.EventPublisher
	if publisher != nil {
		events = publisher
	}
	loader := usecases.NewLoaderService(aggregator, cacheMgr, events, usecases.LoaderOptions{
		ReplaceAlways: cfg.Loader.ReplaceAlways,
	})

	// Initial load; a failure with no cache leaves the API up but empty
	if err := loader.Load(ctx); err != nil {
		slog.Error("initial load failed", "error", err)
	}

	// Photo uploads are optional; without a bucket the endpoint returns 503
	var uploads ports.UploadURLSigner
	if cfg.Uploads.Bucket != "" {
		signer, err := s3adapter.NewUploadSigner(ctx, cfg.Uploads)
		if err != nil {
			slog.Warn("upload signer unavailable", "error", err)
		} else {
			uploads = signer
		}
	}

	deps := &http.Dependencies{
		Loader:      loader,
		Spots:       usecases.NewSpotService(loader),
		Submissions: usecases.NewSubmissionService(postgres.NewSubmissionRepo(db), events),
		Uploads:     uploads,
		NATS:        natsConn,
		DB:          db,
		Store:       store,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "SmokeMap API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.smokemap.org",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-ID",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	// Join any background revalidation before dropping connections
	loader.Wait()

	slog.Info("server stopped")
}
