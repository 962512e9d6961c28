package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new gorm-backed movement repository.
func NewMovementRepository(db *gorm.DB) repository.MovementRepository {
	return &movementRepository{db: db}
}

// Create implements repository.MovementRepository.
func (r *movementRepository) Create(ctx context.Context, m *account.Movement) error {
	row := Movement{
		ID:                   m.ID(),
		SourceAccountID:      m.SourceID(),
		DestinationAccountID: m.DestinationID(),
		Amount:               m.Amount(),
		Timestamp:            m.Timestamp(),
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

// ListByAccount implements repository.MovementRepository.
func (r *movementRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Movement, error) {
	var rows []Movement
	err := r.db.WithContext(ctx).
		Where("source_account_id = ? OR destination_account_id = ?", accountID, accountID).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*account.Movement, 0, len(rows))
	for _, row := range rows {
		result = append(result, account.MovementFromData(
			row.ID, row.SourceAccountID, row.DestinationAccountID, row.Amount, row.Timestamp,
		))
	}
	return result, nil
}
