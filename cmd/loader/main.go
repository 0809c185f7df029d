package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	natsadapter "github.com/smokemap/smokemap/internal/adapters/nats"
	"github.com/smokemap/smokemap/internal/adapters/provider"
	"github.com/smokemap/smokemap/internal/adapters/valkey"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
	"github.com/smokemap/smokemap/internal/pkg/config"
	"github.com/smokemap/smokemap/internal/pkg/localize"
	"github.com/smokemap/smokemap/internal/pkg/logging"
)

// One-shot aggregation run for cron. Fetches every source, dedups, and
// writes the result into the shared cache that the API servers read.
func main() {
	force := flag.Bool("force", false, "bypass the cache and refresh unconditionally")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run deadline")
	flag.Parse()

	cfg, err := config.Load("smokemap-loader")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("smokemap-loader", logLevel, "json")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer store.Close()

	var events ports.EventPublisher
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, refresh events will not be published", "error", err)
	} else {
		defer publisher.Close()
		events = publisher
	}

	loc := localize.DefaultEngine()
	norm := provider.NewNormalizer(loc)
	static := provider.NewStaticProvider(cfg.Loader.StaticDataPath, norm)

	var providers []ports.SpotProvider
	for _, src := range provider.DefaultSources() {
		providers = append(providers, provider.NewOpenDataProvider(src, cfg.Loader.ServiceKey, nil, loc))
	}

	aggregator := usecases.NewAggregatorService(static, providers)
	cacheMgr := usecases.NewCacheManager(store,
		time.Duration(cfg.Loader.CacheTTLHours)*time.Hour,
		cfg.Loader.CacheMaxSpots)
	loader := usecases.NewLoaderService(aggregator, cacheMgr, events, usecases.LoaderOptions{
		ReplaceAlways: cfg.Loader.ReplaceAlways,
	})

	start := time.Now()
	if *force {
		err = loader.Refresh(ctx)
	} else {
		err = loader.Load(ctx)
	}
	if err != nil {
		log.Fatalf("aggregation: %v", err)
	}
	loader.Wait()

	stats := loader.Statistics()
	slog.Info("aggregation complete",
		"total", stats.Total,
		"countries", len(stats.ByCountry),
		"duration", time.Since(start).String())
}
