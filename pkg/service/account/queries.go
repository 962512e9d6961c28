package account

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// GetAccount retrieves an account with its full movement history.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (a *account.Account, err error) {
	logger := s.logger.With("account_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repos, err := repositoriesFrom(uow)
		if err != nil {
			return err
		}
		a, err = repos.load(ctx, id, nil)
		return err
	})
	if err != nil {
		logger.Debug("GetAccount failed", "error", err)
		return nil, err
	}
	return a, nil
}

// ListMovements returns the movements of an account in insertion order.
func (s *Service) ListMovements(ctx context.Context, id uuid.UUID) ([]*account.Movement, error) {
	a, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Movements(), nil
}

// ListAccounts returns every account without history.
func (s *Service) ListAccounts(ctx context.Context) (accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.List(ctx)
		return err
	})
	return accounts, err
}
