package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/loglens/loglens/internal/httpserver"
	"github.com/loglens/loglens/internal/ingest"
	"github.com/loglens/loglens/internal/logparse"
	"github.com/loglens/loglens/internal/model"
	"github.com/loglens/loglens/internal/snapshot"
	"github.com/loglens/loglens/internal/watch"
)

// runServer ingests the log directory and serves the dashboard until a signal.
func runServer(cfg appConfig) error {
	parser := logparse.NewParser()
	if cfg.FormatsFile != "" {
		extra, err := logparse.LoadFormats(cfg.FormatsFile)
		if err != nil {
			return fmt.Errorf("loading format definitions: %w", err)
		}
		parser = logparse.NewParser(extra...)
		log.Printf("loaded %d extra log formats from %s", len(extra), cfg.FormatsFile)
	}

	ingestor := ingest.NewIngestor(parser)
	store := snapshot.NewStore(func() []*model.LogRecord {
		return ingestor.Ingest(cfg.LogsDir, cfg.MaxRecords)
	})

	n := store.Refresh()
	log.Printf("loaded %d log entries from %s", n, cfg.LogsDir)

	apiServer := httpserver.NewServer(cfg.HTTPAddr, store, cfg.TopAddresses)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	defer apiServer.Stop()
	log.Printf("serving dashboard on http://%s", cfg.HTTPAddr)

	if cfg.WatchEnabled {
		watcher, err := watch.New(cfg.LogsDir, cfg.WatchDebounce, func() {
			log.Printf("logs directory changed, reloaded %d entries", store.Refresh())
		})
		if err != nil {
			log.Printf("Warning: directory watch disabled: %v", err)
		} else {
			defer watcher.Stop()
			log.Printf("watching %s for changes", cfg.LogsDir)
		}
	}

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case sig := <-sigCh:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: errgroup exited with error: %v", err)
	}
	signal.Stop(sigCh)

	return nil
}
