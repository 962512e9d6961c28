package initializer

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Env:       "test",
		Log:       &config.Log{Level: 8, Format: "text"},
		DB:        &config.DB{},
		Ledger:    &config.Ledger{MaxTransactionAmount: decimal.NewFromInt(1000), EnforceDistinctAccounts: true},
		EventBus:  &config.EventBus{Driver: "memory"},
		RateLimit: &config.RateLimit{},
		Fixtures:  &config.Fixtures{Seed: true},
	}
}

func TestInitializeDependencies_Memory(t *testing.T) {
	deps, cleanup, err := InitializeDependencies(testConfig())
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, deps.Uow)
	require.NotNil(t, deps.Policy)
	assert.True(t, deps.Policy.EnforceDistinctAccounts)
	_, ok := deps.EventBus.(*infra_eventbus.MemoryEventBus)
	assert.True(t, ok)

	repo, err := deps.Uow.AccountRepository()
	require.NoError(t, err)
	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, accounts, "fixtures should be seeded")
}

func TestInitializeDependencies_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.EventBus.Driver = "carrier-pigeon"
	_, _, err := InitializeDependencies(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Ledger.Timezone = "Nowhere/Special"
	_, _, err = InitializeDependencies(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.DB.Url = "mysql://localhost/ledger"
	_, _, err = InitializeDependencies(cfg)
	assert.Error(t, err)
}

func TestRegisterHandlers_LogsMovements(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Level: -4, Format: "logfmt"})
	bus := infra_eventbus.NewWithMemory(logger)
	registerHandlers(bus, logger)

	m := account.MovementFromData(uuid.New(),
		uuid.NullUUID{},
		uuid.NullUUID{UUID: uuid.New(), Valid: true},
		decimal.NewFromInt(42), time.Now())
	require.NoError(t, bus.Emit(context.Background(), account.NewMovementRecorded(m)))

	out := buf.String()
	assert.Contains(t, out, "Movement recorded")
	assert.Contains(t, out, m.ID().String())
	assert.Contains(t, out, "deposit")
}

func TestInitializeDependencies_SQLite(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Url = "sqlite:" + filepath.Join(t.TempDir(), "ledger.db")

	deps, cleanup, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer cleanup()

	repo, err := deps.Uow.AccountRepository()
	require.NoError(t, err)
	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, accounts)
}
