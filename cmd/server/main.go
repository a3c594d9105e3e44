package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/briefpress/internal/api"
	"github.com/dgallion1/briefpress/internal/compose"
	"github.com/dgallion1/briefpress/internal/config"
	"github.com/dgallion1/briefpress/internal/notion"
	"github.com/dgallion1/briefpress/internal/pipeline"
	"github.com/dgallion1/briefpress/internal/polish"
	"github.com/dgallion1/briefpress/internal/section"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Section taxonomy: external YAML override or the built-in table.
	tax := section.Default()
	if cfg.TaxonomyPath != "" {
		loaded, err := section.Load(cfg.TaxonomyPath)
		if err != nil {
			log.Error("invalid taxonomy", "path", cfg.TaxonomyPath, "error", err)
			os.Exit(1)
		}
		tax = loaded
	}

	// Collaborator clients, owned here and injected below.
	store := notion.NewClient(cfg.NotionAPIURL, cfg.NotionAPIKey, cfg.ReadPageSize)

	var polisher polish.Polisher = polish.Noop{}
	var claude *polish.ClaudeClient
	if cfg.AnthropicAPIKey != "" {
		claude = polish.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		polisher = claude
	}

	limits := compose.Limits{
		BlockTextLimit: cfg.BlockTextLimit,
		BatchSize:      cfg.BatchSize,
	}
	runner := pipeline.NewRunner(store, polisher, tax, limits, cfg.RunTimeout, log)

	srv := api.NewServer(runner, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if claude != nil {
			claude.Close()
		}
		store.Close()
	}()

	log.Info("starting briefpress", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
