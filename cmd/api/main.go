package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-admin/api/controllers"
	"github.com/angelmondragon/storefront-admin/api/routes"
	"github.com/angelmondragon/storefront-admin/internal/activity"
	"github.com/angelmondragon/storefront-admin/internal/admin"
	"github.com/angelmondragon/storefront-admin/internal/products"
	"github.com/angelmondragon/storefront-admin/pkg/config"
	"github.com/angelmondragon/storefront-admin/pkg/db"
	"github.com/angelmondragon/storefront-admin/pkg/instance"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/metrics"
	"github.com/angelmondragon/storefront-admin/pkg/migrate"
	"github.com/angelmondragon/storefront-admin/pkg/pubsub"
	"github.com/angelmondragon/storefront-admin/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	readyChecks := map[string]controllers.Pinger{"db": dbClient}
	var rateLimiter routes.RateLimiter

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		readyChecks["redis"] = redisClient
		rateLimiter = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, admin mutations are not rate limited")
	}

	var pubsubClient *pubsub.Client
	if cfg.PubSub.Enabled() {
		pubsubClient, err = pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		readyChecks["pubsub"] = pubsubClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	adminMetrics := metrics.NewAdminMetrics(reg)

	recorder, err := activity.NewService(activity.ServiceParams{
		Repository: activity.NewRepository(dbClient.DB()),
		Publisher:  activity.NewPubSubPublisher(pubsubClient.ActivityPublisher()),
	})
	if err != nil {
		logg.Error(ctx, "failed to create activity service", err)
		os.Exit(1)
	}

	opts, err := admin.OptionsFromConfig(cfg.Admin)
	if err != nil {
		logg.Error(ctx, "failed to resolve admin options", err)
		os.Exit(1)
	}

	store, err := admin.NewRepository(dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create admin repository", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.ServiceParams{
		Store:    store,
		Activity: recorder,
		Options:  opts,
		Logger:   logg,
		Metrics:  adminMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		Repository: products.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
	})
	logg.Info(serverCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:       cfg,
			Logger:       logg,
			AdminService:   adminService,
			ProductService: productService,
			RateLimiter:    rateLimiter,
			ReadyChecks:    readyChecks,
			Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(serverCtx, "graceful shutdown failed", err)
			exitCode = 1
		}
		cancel()
	}

	closeErr := dbClient.Close()
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, pubsubClient.Close())
	if closeErr != nil {
		logg.Error(serverCtx, "error closing dependencies", closeErr)
	}
	os.Exit(exitCode)
}
