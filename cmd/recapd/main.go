package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/riddler9999/recapflow/internal/api"
	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/job"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/media"
	"github.com/riddler9999/recapflow/internal/orchestrator"
	"github.com/riddler9999/recapflow/internal/scenes"
	"github.com/riddler9999/recapflow/internal/script"
	"github.com/riddler9999/recapflow/internal/store"
	"github.com/riddler9999/recapflow/internal/timeline"
	"github.com/riddler9999/recapflow/internal/transcribe"
	"github.com/riddler9999/recapflow/internal/voice"
	"github.com/riddler9999/recapflow/internal/watcher"
	"github.com/riddler9999/recapflow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "Movie recap service starting")
	log.Info(ctx, "Target recap duration: %.0fs (+%.0f%% tolerance)",
		cfg.Recap.TargetDuration, cfg.Recap.DurationTolerance*100)
	log.Info(ctx, "Max concurrent pipelines: %d", cfg.Performance.MaxConcurrent)

	if len(cfg.Gemini.APIKeys) == 0 {
		log.Warn(ctx, "GEMINI_API_KEYS is not set; script generation will fail until it is")
	}

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	journal, err := store.Open(cfg.Paths.Output)
	if err != nil {
		log.Error(ctx, "Failed to open job journal: %v", err)
		os.Exit(1)
	}
	defer journal.Close()

	exec := executor.New()
	toolkit := media.New(cfg, exec, log)

	orch := orchestrator.New(orchestrator.Deps{
		Config:      cfg,
		Registry:    job.NewRegistry(),
		Journal:     journal,
		Media:       toolkit,
		Transcriber: transcribe.New(cfg, exec, log),
		Generator:   script.New(cfg, log),
		Selector:    scenes.New(cfg, log),
		Compiler:    timeline.New(cfg, log),
		Synthesizer: voice.New(cfg, exec, toolkit, log),
		Logger:      log,
	})

	if err := orch.Restore(ctx); err != nil {
		log.Error(ctx, "Failed to restore jobs: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := api.New(cfg, orch, log)

	errChan := make(chan error, 2)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	// The drop folder is optional: files placed there become jobs without
	// going through the upload endpoint.
	if cfg.Paths.Input != "" {
		w, err := watcher.New(cfg.Paths.Input, ingestFunc(orch, cfg), log, cfg.Performance.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create drop folder watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info(ctx, "Ready: listening on %s:%d", cfg.Server.Host, cfg.Server.Port)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "HTTP shutdown: %v", err)
	}

	log.Info(ctx, "Movie recap service stopped")
}

// ingestFunc adapts the orchestrator to the drop folder watcher: the file
// name becomes the title and the configured default genre applies.
func ingestFunc(orch orchestrator.Orchestrator, cfg *config.Config) watcher.IngestFunc {
	return func(ctx context.Context, filePath string) error {
		filename := filepath.Base(filePath)
		title := strings.TrimSuffix(filename, filepath.Ext(filename))

		snap, err := orch.Create(ctx, filePath, filename, title, cfg.Upload.DefaultGenre)
		if err != nil {
			return err
		}
		orch.Run(ctx, snap.ID)
		return nil
	}
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Uploads, cfg.Paths.Output}
	if cfg.Paths.Input != "" {
		dirs = append(dirs, cfg.Paths.Input)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
