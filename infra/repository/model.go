package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an account record in the database.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HolderName     string          `gorm:"size:255;not null"`
	HolderDocument string          `gorm:"size:64;not null"`
	Bank           string          `gorm:"size:16;not null;uniqueIndex:idx_accounts_key"`
	Branch         string          `gorm:"size:16;not null;uniqueIndex:idx_accounts_key"`
	Number         string          `gorm:"size:32;not null;uniqueIndex:idx_accounts_key"`
	DailyLimit     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Balance        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Movement is one row per movement. A transfer is stored once and found from
// both accounts through the source and destination columns. Seq keeps the
// insertion order.
type Movement struct {
	Seq                  int64           `gorm:"primaryKey;autoIncrement"`
	ID                   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	SourceAccountID      uuid.NullUUID   `gorm:"type:uuid;index"`
	DestinationAccountID uuid.NullUUID   `gorm:"type:uuid;index"`
	Amount               decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Timestamp            time.Time       `gorm:"not null"`
}

// TableName specifies the table name for the Movement model.
func (Movement) TableName() string {
	return "movements"
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Movement{})
}
