package config

import (
	"fmt"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

type DB struct {
	// Url selects the store: empty for in-memory, postgres:// for Postgres,
	// sqlite: or file: for SQLite.
	Url string `envconfig:"URL"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Ledger holds the business policy applied to every operation.
type Ledger struct {
	MaxTransactionAmount    decimal.Decimal `envconfig:"MAX_TRANSACTION_AMOUNT" default:"1000"`
	EnforceDistinctAccounts bool            `envconfig:"ENFORCE_DISTINCT_ACCOUNTS" default:"true"`
	// Timezone used to decide which movements fall on the same day. Empty
	// means each timestamp's own location, which is not stable across a
	// Postgres round-trip.
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
}

// Policy converts the section into an account.Policy.
func (l *Ledger) Policy() (account.Policy, error) {
	p := account.DefaultPolicy()
	if l == nil {
		return p, nil
	}
	if !l.MaxTransactionAmount.IsPositive() {
		return account.Policy{}, fmt.Errorf("ledger: max transaction amount must be positive, got %s", l.MaxTransactionAmount)
	}
	p.MaxTransactionAmount = l.MaxTransactionAmount
	p.EnforceDistinctAccounts = l.EnforceDistinctAccounts
	if l.Timezone != "" {
		loc, err := time.LoadLocation(l.Timezone)
		if err != nil {
			return account.Policy{}, fmt.Errorf("ledger: invalid timezone %q: %w", l.Timezone, err)
		}
		p.Location = loc
	}
	return p, nil
}

type EventBus struct {
	Driver   string `envconfig:"DRIVER" default:"memory"`
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	Stream   string `envconfig:"STREAM" default:"ledger:movements"`
	Group    string `envconfig:"GROUP" default:"ledger"`
}

type Fixtures struct {
	Seed         bool   `envconfig:"SEED" default:"false"`
	AccountsPath string `envconfig:"ACCOUNTS_PATH"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
	Fixtures  *Fixtures  `envconfig:"FIXTURES"`
}
