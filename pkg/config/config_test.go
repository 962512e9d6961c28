package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Empty(t, cfg.DB.Url)
	assert.True(t, decimal.NewFromInt(1000).Equal(cfg.Ledger.MaxTransactionAmount))
	assert.True(t, cfg.Ledger.EnforceDistinctAccounts)
	assert.Equal(t, "memory", cfg.EventBus.Driver)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Fixtures.Seed)

	policy, err := cfg.Ledger.Policy()
	require.NoError(t, err)
	require.NotNil(t, policy.Location)
	assert.Equal(t, time.UTC.String(), policy.Location.String())
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_MAX_TRANSACTION_AMOUNT", "250.50")
	t.Setenv("LEDGER_ENFORCE_DISTINCT_ACCOUNTS", "false")
	t.Setenv("LEDGER_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("DATABASE_URL", "sqlite:ledger.db")
	t.Setenv("EVENT_BUS_DRIVER", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite:ledger.db", cfg.DB.Url)
	assert.Equal(t, "redis", cfg.EventBus.Driver)

	policy, err := cfg.Ledger.Policy()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("250.5").Equal(policy.MaxTransactionAmount))
	assert.False(t, policy.EnforceDistinctAccounts)
	require.NotNil(t, policy.Location)
	assert.Equal(t, "America/Sao_Paulo", policy.Location.String())
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVER_PORT=8181\n"), 0o600))
	chdir(t, sub)
	// godotenv does not override variables that are already set
	t.Setenv("SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("SERVER_PORT"))

	cfg, err := Load(".env.missing", ".env.test")
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestLedger_Policy(t *testing.T) {
	var nilLedger *Ledger
	p, err := nilLedger.Policy()
	require.NoError(t, err)
	assert.True(t, p.EnforceDistinctAccounts)

	_, err = (&Ledger{MaxTransactionAmount: decimal.Zero}).Policy()
	assert.Error(t, err)

	_, err = (&Ledger{MaxTransactionAmount: decimal.NewFromInt(1), Timezone: "Mars/Olympus"}).Policy()
	assert.Error(t, err)
}

func TestFindEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0o600))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	found, err := FindEnvFile("")
	require.NoError(t, err)
	assert.Equal(t, resolve(t, filepath.Join(dir, ".env")), resolve(t, found))

	_, err = FindEnvFile("does-not-exist.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****dger", maskValue("postgres://u:p@h/ledger"))
}

func resolve(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir in Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}
