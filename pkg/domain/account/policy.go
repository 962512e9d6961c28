package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxTransactionAmount is the per-transaction ceiling applied to
// transfers and withdrawals unless configured otherwise.
const DefaultMaxTransactionAmount = 1000

// Policy holds the tunable business rules of the Ledger.
type Policy struct {
	// MaxTransactionAmount is the largest amount a single transfer or
	// withdrawal may move.
	MaxTransactionAmount decimal.Decimal
	// EnforceDistinctAccounts rejects transfers whose source and destination
	// share the same bank/branch/number triple.
	EnforceDistinctAccounts bool
	// Location sets the calendar used for the daily window. When nil each
	// timestamp is read in its own location.
	Location *time.Location
}

// DefaultPolicy returns the 1000 ceiling with the distinct-accounts rule on.
func DefaultPolicy() Policy {
	return Policy{
		MaxTransactionAmount:    decimal.NewFromInt(DefaultMaxTransactionAmount),
		EnforceDistinctAccounts: true,
	}
}

// SameDay reports whether a and b fall on the same calendar date.
func (p Policy) SameDay(a, b time.Time) bool {
	if p.Location != nil {
		a, b = a.In(p.Location), b.In(p.Location)
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SentOn sums the amounts that left the account on the calendar date of day.
func (p Policy) SentOn(a *Account, day time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.movements {
		if m.IsOutgoingFrom(a.ID) && p.SameDay(m.Timestamp(), day) {
			total = total.Add(m.Amount())
		}
	}
	return total
}
