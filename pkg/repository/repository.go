package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
)

// AccountRepository defines the data access operations for accounts.
// Accounts are returned without their movement history; load it through
// MovementRepository.ListByAccount.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByKey(ctx context.Context, key account.Key) (*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	// UpdateBalance persists the current balance of a.
	UpdateBalance(ctx context.Context, a *account.Account) error
	List(ctx context.Context) ([]*account.Account, error)
}

// MovementRepository defines the data access operations for movements.
// Movements are append-only.
type MovementRepository interface {
	Create(ctx context.Context, m *account.Movement) error
	// ListByAccount returns every movement where the account is source or
	// destination, in insertion order.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Movement, error)
}
