// Package bootstrap wires configuration into adapters and the matching core.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"scentquiz/internal/adapters/auth"
	"scentquiz/internal/adapters/catalogfile"
	"scentquiz/internal/adapters/jsonl"
	"scentquiz/internal/adapters/memory"
	"scentquiz/internal/adapters/sqlite"
	"scentquiz/internal/config"
	"scentquiz/internal/domain"
	"scentquiz/internal/matching"
	"scentquiz/internal/ports"
	"scentquiz/internal/session"
)

// App holds everything a front-end needs
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Source   ports.CatalogSource
	Catalog  *domain.Catalog
	Matcher  ports.Matcher
	Users    ports.UserStore
	History  ports.HistoryStore
	Identity ports.IdentityProvider

	closers []func() error
}

// New loads the catalog, builds the matcher index and opens the stores.
// A catalog that cannot be loaded is fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger}

	src, err := catalogfile.Open(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	catalog, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	app.Source = src
	app.Catalog = catalog

	matcher, err := matching.New(cfg.Matching.Strategy, catalog)
	if err != nil {
		return nil, err
	}
	app.Matcher = matcher
	logger.Info("catalog loaded",
		zap.String("source", src.Name()),
		zap.Int("items", catalog.Len()),
		zap.String("strategy", matcher.Strategy()),
	)

	if err := app.openStores(ctx); err != nil {
		app.Close()
		return nil, err
	}
	app.Identity = auth.NewBcryptIdentity(app.Users, cfg.Auth.BcryptCost, logger.Named("auth"))
	return app, nil
}

func (a *App) openStores(ctx context.Context) error {
	switch a.Config.Storage.Backend {
	case config.BackendMemory:
		store := memory.NewStore()
		a.Users, a.History = store, store
	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, a.Config.Storage.Path, a.Logger.Named("sqlite"))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		a.Users, a.History = store, store
		a.Logger.Debug("database opened", zap.String("path", store.Path()))
	default:
		return fmt.Errorf("unknown storage backend %q", a.Config.Storage.Backend)
	}

	if a.Config.Storage.HistoryFile != "" {
		hist, err := jsonl.NewHistoryStore(a.Config.Storage.HistoryFile, a.Logger.Named("history"))
		if err != nil {
			return fmt.Errorf("open history file: %w", err)
		}
		a.History = hist
	}
	return nil
}

// SessionDeps returns the collaborators shared by every quiz session
func (a *App) SessionDeps() session.Deps {
	return session.Deps{
		Matcher: a.Matcher,
		History: a.History,
		Logger:  a.Logger.Named("session"),
	}
}

// Close releases the stores
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
