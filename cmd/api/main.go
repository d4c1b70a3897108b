package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyageyou/voyage-backend/api/routes"
	bookingdomain "github.com/voyageyou/voyage-backend/internal/booking"
	itinerarydomain "github.com/voyageyou/voyage-backend/internal/itinerary"
	scheduledomain "github.com/voyageyou/voyage-backend/internal/schedules"
	"github.com/voyageyou/voyage-backend/internal/wizard"
	"github.com/voyageyou/voyage-backend/pkg/bookingapi"
	"github.com/voyageyou/voyage-backend/pkg/config"
	"github.com/voyageyou/voyage-backend/pkg/db"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/metrics"
	"github.com/voyageyou/voyage-backend/pkg/migrate"
	"github.com/voyageyou/voyage-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	bookingClient, err := bookingapi.New(cfg.Booking)
	if err != nil {
		logg.Error(context.Background(), "failed to configure booking client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	itineraryService := itinerarydomain.NewService(redisClient, cfg.Checkout.ItineraryTTL)
	sessionRepo := wizard.NewRepository(redisClient, cfg.Checkout.SessionTTL)
	wizardService := wizard.NewService(sessionRepo, itineraryService, checkoutMetrics, logg)
	scheduleService := scheduledomain.NewService(scheduledomain.NewRepository(dbClient.DB()), logg)
	bookingService := bookingdomain.NewService(sessionRepo, bookingClient, scheduleService, itineraryService, checkoutMetrics, logg)

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
			itineraryService,
			wizardService,
			bookingService,
			scheduleService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
