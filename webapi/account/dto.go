package account

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// DepositRequest represents the request body for depositing funds into an account.
// Amount accepts a JSON number or a decimal string.
type DepositRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// WithdrawRequest represents the request body for withdrawing funds from an account.
type WithdrawRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// DestinationKey identifies the receiving account by its bank coordinates.
type DestinationKey struct {
	Bank   string `json:"bank" validate:"required,max=16"`
	Branch string `json:"branch" validate:"required,max=16"`
	Number string `json:"number" validate:"required,max=32"`
}

// TransferRequest represents the request body for transferring funds between accounts.
// Exactly one of DestinationAccountID and Destination must be set.
type TransferRequest struct {
	Amount               decimal.Decimal `json:"amount"`
	DestinationAccountID string          `json:"destination_account_id,omitempty" validate:"omitempty,uuid"`
	Destination          *DestinationKey `json:"destination,omitempty" validate:"omitempty"`
	Timestamp            *time.Time      `json:"timestamp,omitempty"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID             string    `json:"id"`
	HolderName     string    `json:"holder_name"`
	HolderDocument string    `json:"holder_document"`
	Bank           string    `json:"bank"`
	Branch         string    `json:"branch"`
	Number         string    `json:"number"`
	DailyLimit     string    `json:"daily_limit"`
	Balance        string    `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MovementDTO is the API response representation of a movement.
type MovementDTO struct {
	ID                   string    `json:"id"`
	Kind                 string    `json:"kind"`
	SourceAccountID      *string   `json:"source_account_id"`
	DestinationAccountID *string   `json:"destination_account_id"`
	Amount               string    `json:"amount"`
	Timestamp            time.Time `json:"timestamp"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:             a.ID.String(),
		HolderName:     a.HolderName,
		HolderDocument: a.HolderDocument,
		Bank:           a.Key.Bank,
		Branch:         a.Key.Branch,
		Number:         a.Key.Number,
		DailyLimit:     a.DailyLimit.String(),
		Balance:        a.Balance.String(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToMovementDTO maps a domain movement to its API representation.
func ToMovementDTO(m *account.Movement) *MovementDTO {
	if m == nil {
		return nil
	}
	dto := &MovementDTO{
		ID:        m.ID().String(),
		Kind:      string(m.Kind()),
		Amount:    m.Amount().String(),
		Timestamp: m.Timestamp(),
	}
	if src := m.SourceID(); src.Valid {
		s := src.UUID.String()
		dto.SourceAccountID = &s
	}
	if dst := m.DestinationID(); dst.Valid {
		s := dst.UUID.String()
		dto.DestinationAccountID = &s
	}
	return dto
}

// ToMovementDTOs maps a slice of movements.
func ToMovementDTOs(ms []*account.Movement) []*MovementDTO {
	out := make([]*MovementDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMovementDTO(m))
	}
	return out
}

func timestampOrZero(ts *time.Time) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return *ts
}
