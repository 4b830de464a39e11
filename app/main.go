package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theautotimes/newsdesk/app/api"
	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/cfg"
	"github.com/theautotimes/newsdesk/app/chat"
	"github.com/theautotimes/newsdesk/app/store"
	"github.com/theautotimes/newsdesk/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting The Auto Times server", "version", appCfg.Version)

	// Build the article catalog from seeds
	seeds, err := catalog.LoadSeeds(appCfg.SeedsFile)
	if err != nil {
		slog.Error("Failed to load catalog seeds", "error", err)
		os.Exit(1)
	}
	articleCatalog := catalog.New(catalog.Build(seeds, time.Now()))
	slog.Info("Catalog built", "articles", articleCatalog.Len())

	// Open the engagement store
	engagement, err := store.Open(appCfg.DataDir)
	if err != nil {
		slog.Error("Failed to open engagement store", "data_dir", appCfg.DataDir, "error", err)
		os.Exit(1)
	}
	defer engagement.Close()
	slog.Info("Engagement store opened", "data_dir", appCfg.DataDir)

	// Initialize core components
	assistant := chat.NewAssistant(appCfg.GeminiAPIKey, appCfg.GeminiModel, articleCatalog.All())
	httpClient := &http.Client{Timeout: 60 * time.Second}
	extractor := tasks.NewContentExtractor()

	// Initialize and start the background scheduler
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(engagement, httpClient, extractor)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	handler := api.NewHandler(articleCatalog, engagement, assistant, scheduler, httpClient)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler and store are stopped via defer
	slog.Info("Shutdown complete")
}
