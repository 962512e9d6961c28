// Package account provisions ledger accounts from CSV fixtures.
package account

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed accounts.csv
var accountsCSV string

var header = []string{
	"id", "holder_name", "holder_document", "bank", "branch", "number", "daily_limit", "balance",
}

// LoadAccountsCSV loads accounts from a CSV file or, if path is empty, from
// the embedded fixture.
func LoadAccountsCSV(path string) ([]*account.Account, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		r = strings.NewReader(accountsCSV)
	}

	return parseAccountsCSV(r)
}

func parseAccountsCSV(r io.Reader) ([]*account.Account, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = len(header)
	csvReader.TrimLeadingSpace = true
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV format: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("invalid CSV format: missing header")
	}
	for i, col := range header {
		if records[0][i] != col {
			return nil, fmt.Errorf("invalid CSV format: column %d is %q, expected %q", i+1, records[0][i], col)
		}
	}

	accounts := make([]*account.Account, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		id, err := uuid.Parse(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id: %w", line, err)
		}
		limit, err := decimal.NewFromString(rec[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid daily_limit: %w", line, err)
		}
		balance, err := decimal.NewFromString(rec[7])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid balance: %w", line, err)
		}
		a, err := account.New().
			WithID(id).
			WithHolder(rec[1], rec[2]).
			WithKey(rec[3], rec[4], rec[5]).
			WithDailyLimit(limit).
			WithBalance(balance).
			Build()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// Seed creates the given accounts, skipping the ones that already exist.
// It returns how many were created.
func Seed(ctx context.Context, uow repository.UnitOfWork, accounts []*account.Account, logger *slog.Logger) (int, error) {
	created := 0
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if _, err := repo.Get(ctx, a.ID); err == nil {
				logger.Debug("Account already provisioned", "account_id", a.ID, "key", a.Key.String())
				continue
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if _, err := repo.GetByKey(ctx, a.Key); err == nil {
				logger.Warn("Account key already taken, skipping", "account_id", a.ID, "key", a.Key.String())
				continue
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if err := repo.Create(ctx, a); err != nil {
				return fmt.Errorf("create account %s: %w", a.ID, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Info("Account fixtures seeded", "created", created, "total", len(accounts))
	return created, nil
}
