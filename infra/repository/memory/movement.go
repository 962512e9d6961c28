package memory

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
)

type movementRepository struct {
	store *Store
	tx    *tx
}

// Create implements repository.MovementRepository.
func (r *movementRepository) Create(ctx context.Context, m *account.Movement) error {
	create := func(t *tx) error {
		r.store.mu.RLock()
		_, exists := r.store.movements[m.ID()]
		r.store.mu.RUnlock()
		for _, staged := range t.movements {
			if staged.ID() == m.ID() {
				exists = true
			}
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		t.movements = append(t.movements, m)
		return nil
	}
	if r.tx != nil {
		return create(r.tx)
	}
	return r.store.autocommit(create)
}

// ListByAccount implements repository.MovementRepository.
func (r *movementRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Movement, error) {
	r.store.mu.RLock()
	ids := r.store.byAccount[accountID]
	result := make([]*account.Movement, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.store.movements[id])
	}
	r.store.mu.RUnlock()

	if r.tx != nil {
		for _, m := range r.tx.movements {
			if m.IsOutgoingFrom(accountID) || m.IsIncomingTo(accountID) {
				result = append(result, m)
			}
		}
	}
	return result, nil
}
