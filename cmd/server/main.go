// Package main is the entry point for the cotizador API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"cotizador/internal/domain/clients"
	"cotizador/internal/domain/quotations"
	"cotizador/internal/domain/reports"
	"cotizador/internal/domain/supplies"
	v1 "cotizador/internal/http/v1"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
)

func main() {
	// Load .env if present; real environment takes precedence.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting cotizador server")

	// --- Storage ---
	dataDir := getEnv("DATA_DIR", "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalw("failed to create data directory", "dir", dataDir, "error", err)
	}
	compress := getEnv("BACKUP_COMPRESS", "false") == "true"

	clientStore := jsonstore.NewFileStore[clients.Client](jsonstore.FileStoreConfig{
		Dir: dataDir, Name: "clientes", Compress: compress,
	})
	supplyStore := jsonstore.NewFileStore[supplies.Supply](jsonstore.FileStoreConfig{
		Dir: dataDir, Name: "insumos", Compress: compress,
	})
	quotationStore := jsonstore.NewFileStore[quotations.Quotation](jsonstore.FileStoreConfig{
		Dir: dataDir, Name: "cotizaciones", Compress: compress,
	})

	// --- Services ---
	clientService := clients.NewService(clientStore)
	supplyService := supplies.NewService(supplyStore)
	quotationService := quotations.NewService(quotations.Config{
		Store:  quotationStore,
		Strict: getEnv("STRICT_TRANSITIONS", "false") == "true",
	})
	reportService := reports.NewService(quotationStore)

	// --- Expiry sweep ---
	// A daily job logs every quotation about to expire so pending work
	// surfaces without anyone opening the dashboard.
	sweepDays := getEnvInt("EXPIRY_SWEEP_DAYS", reports.DefaultExpiryWindowDays)
	scheduler := cron.New()
	_, err = scheduler.AddFunc(getEnv("EXPIRY_SWEEP_SCHEDULE", "0 8 * * *"), func() {
		near, err := reportService.GetNearExpiry(ctx, sweepDays)
		if err != nil {
			log.Warnw("expiry sweep failed", "error", err)
			return
		}
		for _, q := range near {
			log.Infow("quotation near expiry",
				"id", q.ID,
				"cliente", q.Cliente.Nombre,
				"vence", q.FechaVencimiento,
			)
		}
	})
	if err != nil {
		log.Fatalw("invalid expiry sweep schedule", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		Clientes:     clientService,
		Insumos:      supplyService,
		Cotizaciones: quotationService,
		Reportes:     reportService,
		ReadyCheck: func(ctx context.Context) error {
			_, err := quotationStore.LoadAll(ctx)
			return err
		},
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "data_dir", dataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
