// Package app assembles the ledger and services shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"titan/internal/config"
	"titan/internal/db"
	"titan/internal/ledger"
	"titan/internal/pricing"
	"titan/internal/stats"
	"titan/internal/topics"
)

// App holds the wired services.
type App struct {
	Ledger   ledger.Ledger
	Selector *topics.Selector
	Planner  *topics.Planner
	Resolver *pricing.Resolver
	Vocab    topics.Vocabulary

	closers []func()
}

// Build opens the configured ledger backend and wires the services on top of it.
// now defaults to time.Now.
func Build(ctx context.Context, cfg *config.Config, now func() time.Time) (*App, error) {
	if now == nil {
		now = time.Now
	}

	yc, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
	}

	a := &App{Vocab: topics.VocabularyFrom(yc)}

	base, err := a.openLedger(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Ledger = stats.NewCachedLedger(base, cfg.StatsCacheTTL)

	a.Selector = topics.NewSelector(a.Ledger, a.Vocab, topics.NewSeededRand(cfg.RandomSeed), now)
	a.Planner = topics.NewPlanner(uint64(cfg.RandomSeed))
	a.Resolver = pricing.NewResolver(pricing.CatalogFrom(yc), now, cfg.Location())

	return a, nil
}

func (a *App) openLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, error) {
	switch cfg.LedgerBackend {
	case config.LedgerMemory:
		log.Println("Using in-memory ledger; usage is lost on exit")
		return ledger.NewMemory(), nil

	case config.LedgerPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, database.Close)

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("Migrations completed successfully")

		if err := database.SeedCategories(ctx, a.Vocab.Categories); err != nil {
			return nil, err
		}
		return db.NewTopicLedger(database), nil

	case config.LedgerFile, "":
		log.Printf("Using ledger file %s", cfg.LedgerFile)
		return ledger.NewFile(cfg.LedgerFile), nil

	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q (want file, postgres or memory)", cfg.LedgerBackend)
	}
}

// Close releases backend resources.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
