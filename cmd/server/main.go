package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/greencart/logistics/internal/auth"
	"github.com/greencart/logistics/internal/config"
	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/events"
	"github.com/greencart/logistics/internal/handlers"
	"github.com/greencart/logistics/internal/metrics"
	"github.com/greencart/logistics/internal/middleware"
	"github.com/greencart/logistics/internal/sim"
)

func main() {
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := db.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	logrus.WithField("database", cfg.Mongo.Database).Info("Connected to MongoDB")

	collections := db.NewCollections(client.Database(cfg.Mongo.Database))

	authService, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create auth service")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.MQTT.Broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			logrus.WithError(err).Warn("MQTT broker unreachable, simulation events disabled")
		} else {
			publisher = mqttPublisher
			logrus.WithField("broker", cfg.MQTT.Broker).Info("Simulation event publishing enabled")
		}
	}
	defer publisher.Close()

	engine := sim.New(sim.DefaultConfig())

	authHandler := handlers.NewAuthHandler(authService, collections.Users)
	driversHandler := handlers.NewDriversHandler(collections.Drivers)
	routesHandler := handlers.NewRoutesHandler(collections.Routes)
	ordersHandler := handlers.NewOrdersHandler(collections.Orders)
	simulationHandler := handlers.NewSimulationHandler(engine, collections, publisher)

	metrics.RegisterDefault()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("/api/drivers", driversHandler.Handle)
	mux.HandleFunc("/api/drivers/", driversHandler.HandleByID)
	mux.HandleFunc("/api/routes", routesHandler.Handle)
	mux.HandleFunc("/api/routes/", routesHandler.HandleByID)
	mux.HandleFunc("/api/orders", ordersHandler.Handle)
	mux.HandleFunc("/api/orders/", ordersHandler.HandleByID)
	mux.HandleFunc("/api/simulate", simulationHandler.Simulate)
	mux.HandleFunc("/api/kpis", simulationHandler.KPIs)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = rateLimiter.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds)(handler)
	handler = middleware.RequestLogger(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Shutdown failed")
	}
}
