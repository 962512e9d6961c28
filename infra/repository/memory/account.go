package memory

import (
	"context"
	"sort"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
)

type accountRepository struct {
	store *Store
	tx    *tx
}

func (r *accountRepository) lookup(id uuid.UUID) (accountRow, bool) {
	if r.tx != nil {
		if row, ok := r.tx.accounts[id]; ok {
			return row, true
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.accounts[id]
	return row, ok
}

func (r *accountRepository) lookupKey(key account.Key) (accountRow, bool) {
	if r.tx != nil {
		for _, row := range r.tx.accounts {
			if row.key == key {
				return row, true
			}
		}
	}
	r.store.mu.RLock()
	id, ok := r.store.keys[key]
	r.store.mu.RUnlock()
	if !ok {
		return accountRow{}, false
	}
	return r.lookup(id)
}

func (r *accountRepository) write(fn func(t *tx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.autocommit(func(t *tx) error {
		return fn(t)
	})
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	row, ok := r.lookup(id)
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return row.toDomain()
}

// GetByKey implements repository.AccountRepository.
func (r *accountRepository) GetByKey(ctx context.Context, key account.Key) (*account.Account, error) {
	row, ok := r.lookupKey(key)
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return row.toDomain()
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.write(func(t *tx) error {
		scoped := &accountRepository{store: r.store, tx: t}
		if _, ok := scoped.lookup(a.ID); ok {
			return domain.ErrAlreadyExists
		}
		if _, ok := scoped.lookupKey(a.Key); ok {
			return domain.ErrAlreadyExists
		}
		t.accounts[a.ID] = accountRow{
			id:             a.ID,
			holderName:     a.HolderName,
			holderDocument: a.HolderDocument,
			key:            a.Key,
			dailyLimit:     a.DailyLimit,
			balance:        a.Balance,
			createdAt:      a.CreatedAt,
			updatedAt:      a.UpdatedAt,
		}
		return nil
	})
}

// UpdateBalance implements repository.AccountRepository.
func (r *accountRepository) UpdateBalance(ctx context.Context, a *account.Account) error {
	return r.write(func(t *tx) error {
		scoped := &accountRepository{store: r.store, tx: t}
		row, ok := scoped.lookup(a.ID)
		if !ok {
			return account.ErrAccountNotFound
		}
		row.balance = a.Balance
		row.updatedAt = a.UpdatedAt
		t.accounts[a.ID] = row
		return nil
	})
}

// List implements repository.AccountRepository. Accounts are ordered by
// creation time, then bank/branch/number.
func (r *accountRepository) List(ctx context.Context) ([]*account.Account, error) {
	r.store.mu.RLock()
	rows := make(map[uuid.UUID]accountRow, len(r.store.accounts))
	for id, row := range r.store.accounts {
		rows[id] = row
	}
	r.store.mu.RUnlock()
	if r.tx != nil {
		for id, row := range r.tx.accounts {
			rows[id] = row
		}
	}

	sorted := make([]accountRow, 0, len(rows))
	for _, row := range rows {
		sorted = append(sorted, row)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].createdAt.Equal(sorted[j].createdAt) {
			return sorted[i].createdAt.Before(sorted[j].createdAt)
		}
		return sorted[i].key.String() < sorted[j].key.String()
	})

	result := make([]*account.Account, 0, len(sorted))
	for _, row := range sorted {
		a, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
