package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	infra_repository "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/infra/repository/memory"
	accountfixtures "github.com/amirasaad/ledger/internal/fixtures/account"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/repository"
)

// EventTypes maps every event type carried on the bus to a constructor used
// when decoding it.
var EventTypes = map[string]func() eventbus.Event{
	account.MovementRecordedType: func() eventbus.Event { return &account.MovementRecorded{} },
}

// InitializeDependencies builds the logger, store, event bus and policy from
// cfg. The returned cleanup releases external connections.
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	cleanup func(),
	err error,
) {
	logger := NewLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}
	var closers []func()
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	defer func() {
		if err != nil {
			cleanup()
			deps = nil
		}
	}()

	policy, err := cfg.Ledger.Policy()
	if err != nil {
		return nil, cleanup, err
	}
	deps.Policy = &policy

	deps.Uow, closers, err = newUnitOfWork(cfg, logger, closers)
	if err != nil {
		return nil, cleanup, err
	}

	deps.EventBus, closers, err = newEventBus(cfg.EventBus, logger, closers)
	if err != nil {
		return nil, cleanup, err
	}
	registerHandlers(deps.EventBus, logger)

	if cfg.Fixtures != nil && cfg.Fixtures.Seed {
		accounts, err := accountfixtures.LoadAccountsCSV(cfg.Fixtures.AccountsPath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to load account fixtures: %w", err)
		}
		if _, err := accountfixtures.Seed(context.Background(), deps.Uow, accounts, logger); err != nil {
			return nil, cleanup, fmt.Errorf("failed to seed account fixtures: %w", err)
		}
	}

	return deps, cleanup, nil
}

func newUnitOfWork(cfg *config.App, logger *slog.Logger, closers []func()) (repository.UnitOfWork, []func(), error) {
	if cfg.DB == nil || cfg.DB.Url == "" {
		logger.Info("Using in-memory store")
		return memory.NewUoW(memory.NewStore()), closers, nil
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, closers, err
	}
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, func() { _ = sqlDB.Close() })
	}
	if err := infra_repository.Migrate(db); err != nil {
		return nil, closers, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Using SQL store", "dialect", db.Dialector.Name())
	return infra_repository.NewUoW(db), closers, nil
}

func newEventBus(cfg *config.EventBus, logger *slog.Logger, closers []func()) (eventbus.Bus, []func(), error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == "memory" {
		return infra_eventbus.NewWithMemory(logger), closers, nil
	}
	if cfg.Driver != "redis" {
		return nil, closers, fmt.Errorf("unsupported event bus driver: %q", cfg.Driver)
	}
	bus, err := infra_eventbus.NewWithRedis(cfg.RedisURL, cfg.Stream, cfg.Group, EventTypes, logger)
	if err != nil {
		return nil, closers, fmt.Errorf("failed to create Redis event bus: %w", err)
	}
	closers = append(closers, func() { _ = bus.Close() })
	return bus, closers, nil
}

// registerHandlers subscribes the in-process consumers of ledger events.
func registerHandlers(bus eventbus.Bus, logger *slog.Logger) {
	log := logger.With("handler", "movement-recorded")
	bus.Register(account.MovementRecordedType, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(*account.MovementRecorded)
		if !ok {
			return fmt.Errorf("unexpected event %T", e)
		}
		log.Info("Movement recorded",
			"movement_id", evt.MovementID,
			"kind", evt.Kind,
			"source_account_id", evt.SourceAccountID,
			"destination_account_id", evt.DestinationAccountID,
			"amount", evt.Amount.String(),
			"timestamp", evt.Timestamp,
		)
		return nil
	})
}
