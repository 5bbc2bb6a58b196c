package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/config"
	"github.com/abhisek/satdrill/internal/dashboard"
	"github.com/abhisek/satdrill/internal/explain"
	"github.com/abhisek/satdrill/internal/llm"
	"github.com/abhisek/satdrill/internal/logger"
	"github.com/abhisek/satdrill/internal/mastery"
	"github.com/abhisek/satdrill/internal/selection"
	"github.com/abhisek/satdrill/internal/session"
	"github.com/abhisek/satdrill/internal/store"
)

// deps holds everything a practice command needs.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	engine   *mastery.Engine
	selector *selection.Selector
	feeds    *session.Builder
	reporter *dashboard.Reporter
	closer   io.Closer
}

// loadConfig reads the config file named by --config and builds the CLI
// logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logger.NewCLI(cfg, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

// openDeps loads config and catalog, opens the configured store, and wires
// the engine and its consumers. Callers must Close the result.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		return nil, err
	}

	blob, closer, err := openBlob(cmd, cfg)
	if err != nil {
		return nil, err
	}

	engine := mastery.NewEngine(
		store.NewModelRepo(blob, cfg.Store.Key),
		mastery.WithLogger(log),
	)
	selector := selection.NewSelector(engine, log)

	return &deps{
		cfg:      cfg,
		logger:   log,
		catalog:  cat,
		engine:   engine,
		selector: selector,
		feeds:    session.NewBuilder(selector, log),
		reporter: dashboard.NewReporter(engine),
		closer:   closer,
	}, nil
}

// Close releases the store and flushes the logger.
func (d *deps) Close() {
	if d.closer != nil {
		if err := d.closer.Close(); err != nil {
			d.logger.Warn("close store", zap.Error(err))
		}
	}
	_ = d.logger.Sync()
}

// item looks up a catalog item by id.
func (d *deps) item(id string) (catalog.Item, error) {
	it, ok := d.catalog.Get(id)
	if !ok {
		return catalog.Item{}, fmt.Errorf("unknown item %q", id)
	}
	return it, nil
}

// topicRating returns the current rating of the item's topic.
func (d *deps) topicRating(cmd *cobra.Command, it catalog.Item) int {
	m := d.engine.InitModel(cmd.Context(), d.catalog)
	if key, ok := it.Key(); ok {
		if ts := m.Topics[key]; ts != nil {
			return ts.Rating
		}
	}
	return mastery.InitialRating
}

// loadCatalog returns the catalog named by --catalog, then catalog.path,
// then the built-in content.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func openBlob(cmd *cobra.Command, cfg *config.Config) (store.Blob, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		b := store.NewMemoryBlob()
		return b, b, nil
	case config.DriverPostgres:
		s, err := store.OpenPostgres(cmd.Context(), cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return s, s, nil
	default:
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return s, s, nil
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from config or SATDRILL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// newExplainer builds the explanation service. A missing provider is not an
// error; the service then serves offline content.
func newExplainer(cmd *cobra.Command, d *deps) (*explain.Service, error) {
	provider, err := llm.NewProvider(cmd.Context(), d.cfg.LLM, d.logger)
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		d.logger.Info("no LLM provider configured; using offline explanations")
		provider = nil
	case err != nil:
		return nil, err
	}
	return explain.NewService(provider,
		explain.WithTimeout(d.cfg.LLMTimeout()),
		explain.WithLogger(d.logger),
	), nil
}
