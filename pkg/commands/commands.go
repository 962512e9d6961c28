// Package commands contains the inputs accepted by the account service.
package commands

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer moves Amount from SourceAccountID to another account, identified
// either by DestinationAccountID or by its Destination key. A zero Timestamp
// means now.
type Transfer struct {
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Destination          *account.Key
	Amount               decimal.Decimal
	Timestamp            time.Time
}

// Deposit credits Amount to AccountID.
type Deposit struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Withdraw debits Amount from AccountID.
type Withdraw struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Timestamp time.Time
}
