package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new gorm-backed account repository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapAccountError(err)
	}
	return mapAccountModelToDomain(&m)
}

// GetByKey implements repository.AccountRepository.
func (r *accountRepository) GetByKey(ctx context.Context, key account.Key) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Where("bank = ? AND branch = ? AND number = ?", key.Bank, key.Branch, key.Number).
		First(&m).Error
	if err != nil {
		return nil, mapAccountError(err)
	}
	return mapAccountModelToDomain(&m)
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := mapAccountDomainToModel(a)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// UpdateBalance implements repository.AccountRepository.
func (r *accountRepository) UpdateBalance(ctx context.Context, a *account.Account) error {
	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"balance": a.Balance, "updated_at": updatedAt})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// List implements repository.AccountRepository.
func (r *accountRepository) List(ctx context.Context) ([]*account.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*account.Account, 0, len(rows))
	for i := range rows {
		a, err := mapAccountModelToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func mapAccountError(err error) error {
	err = MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return account.ErrAccountNotFound
	}
	return err
}

func mapAccountDomainToModel(a *account.Account) Account {
	return Account{
		ID:             a.ID,
		HolderName:     a.HolderName,
		HolderDocument: a.HolderDocument,
		Bank:           a.Key.Bank,
		Branch:         a.Key.Branch,
		Number:         a.Key.Number,
		DailyLimit:     a.DailyLimit,
		Balance:        a.Balance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func mapAccountModelToDomain(m *Account) (*account.Account, error) {
	return account.New().
		WithID(m.ID).
		WithHolder(m.HolderName, m.HolderDocument).
		WithKey(m.Bank, m.Branch, m.Number).
		WithDailyLimit(m.DailyLimit).
		WithBalance(m.Balance).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}
