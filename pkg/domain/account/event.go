package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementRecordedType is the event type emitted once a movement is persisted.
const MovementRecordedType = "MovementRecorded"

// MovementRecorded announces a committed movement.
type MovementRecorded struct {
	MovementID           uuid.UUID       `json:"movement_id"`
	Kind                 Kind            `json:"kind"`
	SourceAccountID      uuid.NullUUID   `json:"source_account_id"`
	DestinationAccountID uuid.NullUUID   `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Timestamp            time.Time       `json:"timestamp"`
}

func (MovementRecorded) Type() string { return MovementRecordedType }

// NewMovementRecorded builds the event for m.
func NewMovementRecorded(m *Movement) *MovementRecorded {
	return &MovementRecorded{
		MovementID:           m.ID(),
		Kind:                 m.Kind(),
		SourceAccountID:      m.SourceID(),
		DestinationAccountID: m.DestinationID(),
		Amount:               m.Amount(),
		Timestamp:            m.Timestamp(),
	}
}
