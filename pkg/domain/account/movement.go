package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a movement by which ends are present.
type Kind string

const (
	KindTransfer   Kind = "transfer"
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Movement is an immutable record of value moved out of and/or into an
// account. A transfer produces one Movement referenced by both accounts.
type Movement struct {
	id          uuid.UUID
	source      uuid.NullUUID
	destination uuid.NullUUID
	amount      decimal.Decimal
	timestamp   time.Time
}

func newMovement(source, destination *Account, amount decimal.Decimal, ts time.Time) *Movement {
	m := &Movement{
		id:        uuid.New(),
		amount:    amount,
		timestamp: ts,
	}
	if source != nil {
		m.source = uuid.NullUUID{UUID: source.ID, Valid: true}
	}
	if destination != nil {
		m.destination = uuid.NullUUID{UUID: destination.ID, Valid: true}
	}
	return m
}

// MovementFromData rebuilds a Movement from stored data (repository hydration
// and test fixtures). It bypasses the ledger rules.
func MovementFromData(
	id uuid.UUID,
	source, destination uuid.NullUUID,
	amount decimal.Decimal,
	ts time.Time,
) *Movement {
	return &Movement{
		id:          id,
		source:      source,
		destination: destination,
		amount:      amount,
		timestamp:   ts,
	}
}

func (m *Movement) ID() uuid.UUID                { return m.id }
func (m *Movement) SourceID() uuid.NullUUID      { return m.source }
func (m *Movement) DestinationID() uuid.NullUUID { return m.destination }
func (m *Movement) Amount() decimal.Decimal      { return m.amount }
func (m *Movement) Timestamp() time.Time         { return m.timestamp }

// Kind reports whether the movement is a transfer, a deposit or a withdrawal.
func (m *Movement) Kind() Kind {
	switch {
	case m.source.Valid && m.destination.Valid:
		return KindTransfer
	case m.destination.Valid:
		return KindDeposit
	default:
		return KindWithdrawal
	}
}

// IsOutgoingFrom reports whether the movement took value out of the account.
func (m *Movement) IsOutgoingFrom(accountID uuid.UUID) bool {
	return m.source.Valid && m.source.UUID == accountID
}

// IsIncomingTo reports whether the movement brought value into the account.
func (m *Movement) IsIncomingTo(accountID uuid.UUID) bool {
	return m.destination.Valid && m.destination.UUID == accountID
}

// EffectOn returns the signed balance change the movement caused on the account.
func (m *Movement) EffectOn(accountID uuid.UUID) decimal.Decimal {
	effect := decimal.Zero
	if m.IsIncomingTo(accountID) {
		effect = effect.Add(m.amount)
	}
	if m.IsOutgoingFrom(accountID) {
		effect = effect.Sub(m.amount)
	}
	return effect
}
