// Package memory is an in-process implementation of the repository
// contracts. All units of work run one at a time.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountRow struct {
	id             uuid.UUID
	holderName     string
	holderDocument string
	key            account.Key
	dailyLimit     decimal.Decimal
	balance        decimal.Decimal
	createdAt      time.Time
	updatedAt      time.Time
}

func (r accountRow) toDomain() (*account.Account, error) {
	return account.New().
		WithID(r.id).
		WithHolder(r.holderName, r.holderDocument).
		WithKey(r.key.Bank, r.key.Branch, r.key.Number).
		WithDailyLimit(r.dailyLimit).
		WithBalance(r.balance).
		WithCreatedAt(r.createdAt).
		WithUpdatedAt(r.updatedAt).
		Build()
}

// Store holds committed state. Movements are kept once and indexed by every
// account they touch.
type Store struct {
	writer sync.Mutex

	mu        sync.RWMutex
	accounts  map[uuid.UUID]accountRow
	keys      map[account.Key]uuid.UUID
	movements map[uuid.UUID]*account.Movement
	byAccount map[uuid.UUID][]uuid.UUID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[uuid.UUID]accountRow),
		keys:      make(map[account.Key]uuid.UUID),
		movements: make(map[uuid.UUID]*account.Movement),
		byAccount: make(map[uuid.UUID][]uuid.UUID),
	}
}

// UoW is the unit of work over a Store. Inside Do, writes are staged and
// applied only when the function returns nil.
type UoW struct {
	store *Store
	tx    *tx
}

// NewUoW creates a unit of work over store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn while holding the store's writer lock.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.writer.Lock()
	defer u.store.writer.Unlock()

	t := newTx(u.store)
	if err := fn(&UoW{store: u.store, tx: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.commit()
	return nil
}

// AccountRepository returns an account repository bound to the current unit
// of work. Outside Do every write commits immediately.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{store: u.store, tx: u.tx}, nil
}

// MovementRepository returns a movement repository bound to the current unit
// of work. Outside Do every write commits immediately.
func (u *UoW) MovementRepository() (repository.MovementRepository, error) {
	return &movementRepository{store: u.store, tx: u.tx}, nil
}

var _ repository.UnitOfWork = (*UoW)(nil)

// tx stages writes until commit.
type tx struct {
	store     *Store
	accounts  map[uuid.UUID]accountRow
	movements []*account.Movement
}

func newTx(s *Store) *tx {
	return &tx{store: s, accounts: make(map[uuid.UUID]accountRow)}
}

func (t *tx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range t.accounts {
		if old, ok := s.accounts[id]; ok && old.key != row.key {
			delete(s.keys, old.key)
		}
		s.accounts[id] = row
		s.keys[row.key] = id
	}
	for _, m := range t.movements {
		s.movements[m.ID()] = m
		if src := m.SourceID(); src.Valid {
			s.byAccount[src.UUID] = append(s.byAccount[src.UUID], m.ID())
		}
		if dst := m.DestinationID(); dst.Valid && (!m.SourceID().Valid || dst.UUID != m.SourceID().UUID) {
			s.byAccount[dst.UUID] = append(s.byAccount[dst.UUID], m.ID())
		}
	}
}

// autocommit runs a single write outside Do.
func (s *Store) autocommit(write func(t *tx) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	t := newTx(s)
	if err := write(t); err != nil {
		return err
	}
	t.commit()
	return nil
}
