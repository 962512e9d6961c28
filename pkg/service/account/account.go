// Package account orchestrates the ledger operations: it loads the accounts
// and their history inside a unit of work, lets the domain ledger validate
// and apply the movement, persists the result and announces it on the event
// bus once committed.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/repository"
)

// Service provides the account operations: transfer, deposit, withdraw and
// the read queries around them.
type Service struct {
	uow      repository.UnitOfWork
	ledger   *account.Ledger
	eventBus eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service with the provided dependencies. A nil
// Policy falls back to account.DefaultPolicy.
func NewService(deps config.Deps) *Service {
	policy := account.DefaultPolicy()
	if deps.Policy != nil {
		policy = *deps.Policy
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:      deps.Uow,
		ledger:   account.NewLedger(policy),
		eventBus: deps.EventBus,
		logger:   logger.With("service", "account"),
		now:      time.Now,
	}
}

// WithClock replaces the clock used for missing timestamps and update times.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Transfer moves money between two accounts.
func (s *Service) Transfer(ctx context.Context, cmd commands.Transfer) (m *account.Movement, err error) {
	logger := s.logger.With(
		"operation", "transfer",
		"source_account_id", cmd.SourceAccountID,
		"amount", cmd.Amount.String(),
	)
	if cmd.Destination != nil {
		logger = logger.With("destination", cmd.Destination.String())
	} else {
		logger = logger.With("destination_account_id", cmd.DestinationAccountID)
	}
	logger.Info("Transfer started")
	defer func() { s.logOutcome(logger, "Transfer", m, err) }()

	ts := s.timestamp(cmd.Timestamp)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repos, err := repositoriesFrom(uow)
		if err != nil {
			return err
		}
		seen := make(map[string]*account.Movement)

		source, err := repos.load(ctx, cmd.SourceAccountID, seen)
		if err != nil {
			return err
		}

		var destination *account.Account
		switch {
		case cmd.Destination != nil:
			destination, err = repos.loadByKey(ctx, *cmd.Destination, source, seen)
		default:
			destination, err = repos.loadOther(ctx, cmd.DestinationAccountID, source, seen)
		}
		if err != nil {
			return err
		}

		m, err = s.ledger.Transfer(source, destination, cmd.Amount, ts)
		if err != nil {
			return err
		}
		return repos.persist(ctx, m, s.now().UTC(), source, destination)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, logger, m)
	return m, nil
}

// Deposit credits money to an account.
func (s *Service) Deposit(ctx context.Context, cmd commands.Deposit) (m *account.Movement, err error) {
	logger := s.logger.With(
		"operation", "deposit",
		"account_id", cmd.AccountID,
		"amount", cmd.Amount.String(),
	)
	logger.Info("Deposit started")
	defer func() { s.logOutcome(logger, "Deposit", m, err) }()

	ts := s.timestamp(cmd.Timestamp)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repos, err := repositoriesFrom(uow)
		if err != nil {
			return err
		}
		destination, err := repos.load(ctx, cmd.AccountID, nil)
		if err != nil {
			return err
		}
		m, err = s.ledger.Deposit(destination, cmd.Amount, ts)
		if err != nil {
			return err
		}
		return repos.persist(ctx, m, s.now().UTC(), destination)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, logger, m)
	return m, nil
}

// Withdraw debits money from an account.
func (s *Service) Withdraw(ctx context.Context, cmd commands.Withdraw) (m *account.Movement, err error) {
	logger := s.logger.With(
		"operation", "withdraw",
		"account_id", cmd.AccountID,
		"amount", cmd.Amount.String(),
	)
	logger.Info("Withdraw started")
	defer func() { s.logOutcome(logger, "Withdraw", m, err) }()

	ts := s.timestamp(cmd.Timestamp)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repos, err := repositoriesFrom(uow)
		if err != nil {
			return err
		}
		source, err := repos.load(ctx, cmd.AccountID, nil)
		if err != nil {
			return err
		}
		m, err = s.ledger.Withdraw(source, cmd.Amount, ts)
		if err != nil {
			return err
		}
		return repos.persist(ctx, m, s.now().UTC(), source)
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, logger, m)
	return m, nil
}

func (s *Service) timestamp(ts time.Time) time.Time {
	if ts.IsZero() {
		return s.now()
	}
	return ts
}
