package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-metabox/pkg/eligibility"
	"github.com/goliatone/go-metabox/pkg/hooks"
	"github.com/goliatone/go-metabox/pkg/orchestrator"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/render"
	"github.com/goliatone/go-metabox/pkg/render/pongo"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
	"github.com/goliatone/go-metabox/pkg/storage/sqlstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "metabox-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	globals := map[string]any{"site": cfg.SiteName}
	renderer, err := render.NewPanel(
		render.WithTemplatesDir(cfg.TemplatesDir),
		render.WithTemplateGlobals(globals),
	)
	if err != nil {
		return fmt.Errorf("panel templates: %w", err)
	}

	registrar := hooks.New()
	options := []orchestrator.Option{
		orchestrator.WithRenderer(renderer),
		orchestrator.WithStore(store),
		orchestrator.WithRegistrar(registrar),
		orchestrator.WithLogger(logger),
		orchestrator.WithDefinitionsFS(os.DirFS(cfg.Definitions)),
	}
	if cfg.NonceSecret != "" {
		nonces, err := eligibility.NewNonces([]byte(cfg.NonceSecret), eligibility.WithTTL(cfg.NonceTTL))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTokens(nonces))
	} else {
		logger.Warn("METABOX_NONCE_SECRET not set, saves are not nonce protected")
	}

	gen := orchestrator.New(options...)
	panels, err := gen.Load()
	if err != nil {
		return err
	}
	logger.Info("panels mounted", "count", len(panels), "definitions", cfg.Definitions)

	srv, err := newServer(cfg.Screen, registrar, gen, logger,
		pongo.WithBaseDir(cfg.TemplatesDir),
		pongo.WithGlobalData(globals),
	)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func openStore(cfg Config) (panel.Store, func(), error) {
	var (
		store *sqlstore.Store
		err   error
	)
	switch {
	case cfg.DatabaseURL != "":
		store, err = sqlstore.OpenPostgres(cfg.DatabaseURL)
	case cfg.SQLitePath != "":
		store, err = sqlstore.OpenSQLite(cfg.SQLitePath)
	default:
		return memory.New(), func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return store, func() { store.Close() }, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
