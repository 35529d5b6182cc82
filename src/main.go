package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/contre95/fsbridge/src/features/classify"
	"github.com/contre95/fsbridge/src/features/config"
	"github.com/contre95/fsbridge/src/features/hosting"
	"github.com/contre95/fsbridge/src/features/logging"
	"github.com/contre95/fsbridge/src/features/metrics"
	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/contre95/fsbridge/src/infra/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfgManager, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	var collector *metrics.Collector
	var recorder classify.Recorder
	var drops watcher.DropCounter
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		recorder = collector
		drops = collector
	}
	classifyService := classify.NewService(recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional diagnostic feed from the configured directories
	var fileWatcher *watcher.Watcher
	if cfg.Watch.Enabled {
		events := make(chan fsevent.FileChangeEvent, cfg.Watch.Buffer)
		fileWatcher, err = watcher.NewWatcher(events, drops)
		if err != nil {
			log.Fatalf("failed to create watcher: %v", err)
		}
		if err := fileWatcher.Start(ctx, cfg.Watch.Paths...); err != nil {
			log.Fatalf("failed to start watcher: %v", err)
		}
		go classifyService.Consume(ctx, events)
	}

	server := hosting.NewServer(cfgManager, classifyService, collector)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	cancel()
	if fileWatcher != nil {
		fileWatcher.Stop()
		<-fileWatcher.Done()
	}

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
