package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/firedoors/firedoors-backend/api/routes"
	"github.com/firedoors/firedoors-backend/internal/counterparties"
	"github.com/firedoors/firedoors-backend/internal/orders"
	"github.com/firedoors/firedoors-backend/internal/shipments"
	"github.com/firedoors/firedoors-backend/pkg/config"
	"github.com/firedoors/firedoors-backend/pkg/db"
	"github.com/firedoors/firedoors-backend/pkg/logger"
	"github.com/firedoors/firedoors-backend/pkg/metrics"
	"github.com/firedoors/firedoors-backend/pkg/migrate"
	"github.com/firedoors/firedoors-backend/pkg/redis"
	"github.com/firedoors/firedoors-backend/pkg/storage/local"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	fileStore, err := local.New(cfg.Files)
	if err != nil {
		logg.Error(context.Background(), "failed to open file store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ingestMetrics := metrics.NewIngestMetrics(registry)
	transitionMetrics := metrics.NewTransitionMetrics(registry)

	orderLock, err := orders.NewOrderLock(redisClient, cfg.Ingest.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create order lock", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, dbClient, fileStore, orderLock, logg, ingestMetrics, transitionMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	shipper, ok := ordersService.(orders.ItemShipper)
	if !ok {
		logg.Error(context.Background(), "orders service does not ship items", nil)
		os.Exit(1)
	}
	shipmentsService, err := shipments.NewService(shipments.NewRepository(dbClient.DB()), dbClient, ordersRepo, shipper, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipments service", err)
		os.Exit(1)
	}

	counterpartiesService, err := counterparties.NewService(counterparties.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create counterparties service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			ordersService,
			shipmentsService,
			counterpartiesService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
