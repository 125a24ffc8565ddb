package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azure/market-research-agent/internal/api"
	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/metrics"
	"github.com/azure/market-research-agent/internal/monitoring"
	"github.com/azure/market-research-agent/internal/notifications"
	"github.com/azure/market-research-agent/internal/scheduler"
	"github.com/azure/market-research-agent/internal/search"
	"github.com/azure/market-research-agent/internal/storage"
	"github.com/azure/market-research-agent/internal/store"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Market Research Agent")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Report archive is optional
	var archive storage.StorageInterface
	if cfg.StorageAccount != "" {
		blobArchive, err := storage.NewBlobArchive(ctx, cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize storage: %v", err)
		}
		archive = blobArchive
	} else {
		logrus.Info("AZURE_STORAGE_ACCOUNT not set, reports will not be archived")
	}

	// Alert publishing over NATS is optional
	var publisher notifications.AlertPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := notifications.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logrus.Fatalf("Failed to initialize NATS publisher: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// Initialize notification services
	notificationService := notifications.NewService(cfg, publisher)

	// Initialize research pipeline
	gateway := search.NewGateway(cfg, search.NewMapper(search.NewRandomSynthetic(time.Now().UnixNano())), collector)
	monitoringService := monitoring.NewService(cfg, gateway, store.New(), archive, notificationService, collector)

	// Initialize scheduler
	schedulerService := scheduler.NewService(monitoringService)

	if cfg.AutoStart {
		if err := schedulerService.Start(); err != nil {
			logrus.Warnf("Monitoring not started: %v", err)
		}
	}

	// Set up HTTP server for the dashboard API
	handler := api.NewHandler(ctx, monitoringService, schedulerService)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewRouter(handler, registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	schedulerService.Close(shutdownCtx)

	logrus.Info("Server exited")
}
