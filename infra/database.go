package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabase is returned when no database URL is configured.
var ErrNoDatabase = errors.New("DATABASE_URL is not set")

// Dialector picks the gorm driver for a database URL: postgres:// or
// postgresql:// for Postgres, sqlite:<path> or file:<dsn> for SQLite.
func Dialector(databaseUrl string) (gorm.Dialector, error) {
	switch {
	case databaseUrl == "":
		return nil, ErrNoDatabase
	case strings.HasPrefix(databaseUrl, "postgres://"), strings.HasPrefix(databaseUrl, "postgresql://"):
		return postgres.Open(databaseUrl), nil
	case strings.HasPrefix(databaseUrl, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(databaseUrl, "sqlite:")), nil
	case strings.HasPrefix(databaseUrl, "file:"):
		return sqlite.Open(databaseUrl), nil
	}
	return nil, fmt.Errorf("unsupported database URL scheme: %q", databaseUrl)
}

// NewDBConnection opens the configured database and tunes its pool.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	dialector, err := Dialector(cnf.Url)
	if err != nil {
		return nil, err
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		// a single connection keeps SQLite writes from failing with SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
	}
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
