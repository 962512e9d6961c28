package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

type repositories struct {
	accounts  repository.AccountRepository
	movements repository.MovementRepository
}

func repositoriesFrom(uow repository.UnitOfWork) (*repositories, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	movements, err := uow.MovementRepository()
	if err != nil {
		return nil, err
	}
	return &repositories{accounts: accounts, movements: movements}, nil
}

// load fetches the account and hydrates its history. Movements already in
// seen are reused so a transfer shared by two loaded accounts is one value.
func (r *repositories) load(ctx context.Context, id uuid.UUID, seen map[string]*account.Movement) (*account.Account, error) {
	a, err := r.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return a, r.hydrate(ctx, a, seen)
}

// loadOther loads the counterpart of a transfer, returning from itself when
// the ID matches.
func (r *repositories) loadOther(
	ctx context.Context,
	id uuid.UUID,
	from *account.Account,
	seen map[string]*account.Movement,
) (*account.Account, error) {
	if id == from.ID {
		return from, nil
	}
	return r.load(ctx, id, seen)
}

func (r *repositories) loadByKey(
	ctx context.Context,
	key account.Key,
	from *account.Account,
	seen map[string]*account.Movement,
) (*account.Account, error) {
	a, err := r.accounts.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if a.ID == from.ID {
		return from, nil
	}
	return a, r.hydrate(ctx, a, seen)
}

func (r *repositories) hydrate(ctx context.Context, a *account.Account, seen map[string]*account.Movement) error {
	history, err := r.movements.ListByAccount(ctx, a.ID)
	if err != nil {
		return err
	}
	if seen != nil {
		for i, m := range history {
			key := m.ID().String()
			if known, ok := seen[key]; ok {
				history[i] = known
				continue
			}
			seen[key] = m
		}
	}
	a.LoadHistory(history)
	return nil
}

// persist writes the new balances of the touched accounts and the movement.
func (r *repositories) persist(ctx context.Context, m *account.Movement, now time.Time, touched ...*account.Account) error {
	done := make(map[uuid.UUID]bool, len(touched))
	for _, a := range touched {
		if done[a.ID] {
			continue
		}
		done[a.ID] = true
		a.UpdatedAt = now
		if err := r.accounts.UpdateBalance(ctx, a); err != nil {
			return err
		}
	}
	return r.movements.Create(ctx, m)
}

// emit announces a committed movement. The movement is already durable, so a
// failure here is logged and not returned.
func (s *Service) emit(ctx context.Context, logger *slog.Logger, m *account.Movement) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(ctx, account.NewMovementRecorded(m)); err != nil {
		logger.Warn("Failed to emit MovementRecorded", "movement_id", m.ID(), "error", err)
	}
}

func (s *Service) logOutcome(logger *slog.Logger, op string, m *account.Movement, err error) {
	switch {
	case err == nil:
		logger.Info(op+" successful", "movement_id", m.ID())
	case isRejection(err):
		logger.Warn(op+" rejected", "error", err)
	default:
		logger.Error(op+" failed", "error", err)
	}
}

// isRejection reports whether err is a business outcome rather than a fault.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrFailedPrecondition) ||
		errors.Is(err, domain.ErrNotFound)
}
