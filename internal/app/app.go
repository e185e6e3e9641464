package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"Newsdesk/internal/api"
	"Newsdesk/internal/config"
	"Newsdesk/internal/feed"
	"Newsdesk/internal/infrastructure/httpsource"
	"Newsdesk/internal/infrastructure/storage"
	"Newsdesk/internal/logging"
	"Newsdesk/internal/ports"
	"Newsdesk/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.SQLRepository
	source   ports.ArticleSource
	homepage *usecase.Homepage
}

// New opens the article source and builds the homepage use case. With a
// remote source URL configured no database is opened.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	if cfg.Source.RemoteURL != "" {
		a.source = httpsource.NewClient(cfg.Source.RemoteURL, cfg.Source.Timeout)
		baseLogger.Info("using remote article source", "url", cfg.Source.RemoteURL)
	} else {
		store, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open article store: %w", err)
		}
		a.store = store
		a.source = usecase.NewCatalog(store, baseLogger.With("component", "catalog"))
	}

	a.homepage = usecase.NewHomepage(usecase.HomepageDeps{
		Source: a.source,
		Policy: cfg.Feed.Policy(),
		Limits: cfg.Feed.Limits(),
		Logger: baseLogger.With("component", "homepage"),
	})
	return a, nil
}

// Run serves the HTTP API until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	handler := api.NewHandler(a.source, a.homepage, a.logger.With("component", "api"))
	server := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

// Compose builds a single homepage.
func (a *Application) Compose(ctx context.Context) feed.Homepage {
	return a.homepage.Build(ctx)
}

// Seed loads fixtures into the local store.
func (a *Application) Seed(ctx context.Context, raw []byte) (int, error) {
	if a.store == nil {
		return 0, fmt.Errorf("seeding requires a local database, remote source %s configured", a.cfg.Source.RemoteURL)
	}
	fx, err := usecase.ParseFixtures(raw)
	if err != nil {
		return 0, err
	}
	return usecase.NewSeeder(a.store, a.logger.With("component", "seeder")).Seed(ctx, fx)
}

// Close releases the store.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
