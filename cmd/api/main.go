package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/pkg/cache"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

const serviceName = "storefront-backend"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()
	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server.exit", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cacheMetrics := metrics.NewCacheMetrics(registry)
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)

	var bus cache.TagBus
	if cfg.Redis.Enabled() {
		redisBus, busErr := cache.NewRedisBus(ctx, cfg.Redis, cacheMetrics)
		if busErr != nil {
			return busErr
		}
		defer func() {
			err = multierr.Append(err, redisBus.Close())
		}()
		bus = redisBus
		logg.Info(ctx, "cache.bus.redis")
	} else {
		bus = cache.NewMemoryBus(cacheMetrics)
		logg.Info(ctx, "cache.bus.memory")
	}

	tagCache := cache.NewTagCache(bus, cfg.Cache.CatalogTTL, cacheMetrics)

	client, err := upstream.NewClient(cfg.Upstream, tagCache, bus, logg, upstreamMetrics)
	if err != nil {
		return err
	}

	catalogService, err := catalog.NewService(client)
	if err != nil {
		return err
	}
	gateway, err := cart.NewGateway(client, logg)
	if err != nil {
		return err
	}
	actions, err := cart.NewActions(gateway, logg)
	if err != nil {
		return err
	}

	cartController, err := controllers.NewCartController(gateway, actions, logg)
	if err != nil {
		return err
	}
	catalogController, err := controllers.NewCatalogController(catalogService, logg)
	if err != nil {
		return err
	}
	revalidateController, err := controllers.NewRevalidateController(bus, cfg.Revalidation.Secret, logg)
	if err != nil {
		return err
	}

	router := routes.New(routes.Dependencies{
		Health:     controllers.NewHealthController(serviceName, cfg.App.Env),
		Cart:       cartController,
		Catalog:    catalogController,
		Revalidate: revalidateController,
		Logger:     logg,
		CORS:       cfg.CORS,
		Gatherer:   registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server.listening")
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case serveErr := <-errCh:
		return serveErr
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "server.shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return multierr.Append(err, server.Shutdown(shutdownCtx))
}
