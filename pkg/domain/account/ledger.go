package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger applies transfers, deposits and withdrawals to accounts. Every
// operation validates completely before it mutates anything, so a returned
// error always means no balance changed and no movement was recorded.
//
// A Ledger holds no state besides its Policy. Callers must give each call
// exclusive access to the accounts it touches.
type Ledger struct {
	policy Policy
}

// NewLedger returns a Ledger enforcing the given policy. A ceiling that is
// not positive is replaced by DefaultMaxTransactionAmount.
func NewLedger(policy Policy) *Ledger {
	if !policy.MaxTransactionAmount.IsPositive() {
		policy.MaxTransactionAmount = decimal.NewFromInt(DefaultMaxTransactionAmount)
	}
	return &Ledger{policy: policy}
}

// Policy returns the rules the ledger enforces.
func (l *Ledger) Policy() Policy {
	return l.policy
}

// Transfer moves amount from source to destination. Rules are checked in
// order: distinct accounts (when enforced), positive amount, ceiling, daily
// limit, balance.
func (l *Ledger) Transfer(source, destination *Account, amount decimal.Decimal, ts time.Time) (*Movement, error) {
	if source == nil || destination == nil {
		return nil, ErrNilAccount
	}
	if l.policy.EnforceDistinctAccounts && source.SameAs(destination) {
		return nil, ErrSameAccount
	}
	if err := l.checkAmount(amount); err != nil {
		return nil, err
	}
	if l.policy.SentOn(source, ts).Add(amount).GreaterThan(source.DailyLimit) {
		return nil, ErrDailyLimitExceeded
	}
	if source.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	m := newMovement(source, destination, amount, ts)
	source.Balance = source.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)
	source.record(m)
	if destination != source {
		destination.record(m)
	}
	return m, nil
}

// Deposit adds amount to destination. Only the amount sign is checked.
func (l *Ledger) Deposit(destination *Account, amount decimal.Decimal, ts time.Time) (*Movement, error) {
	if destination == nil {
		return nil, ErrNilAccount
	}
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	m := newMovement(nil, destination, amount, ts)
	destination.Balance = destination.Balance.Add(amount)
	destination.record(m)
	return m, nil
}

// Withdraw takes amount out of source. The daily limit does not apply.
func (l *Ledger) Withdraw(source *Account, amount decimal.Decimal, ts time.Time) (*Movement, error) {
	if source == nil {
		return nil, ErrNilAccount
	}
	if err := l.checkAmount(amount); err != nil {
		return nil, err
	}
	if source.Balance.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}

	m := newMovement(source, nil, amount, ts)
	source.Balance = source.Balance.Sub(amount)
	source.record(m)
	return m, nil
}

func (l *Ledger) checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.GreaterThan(l.policy.MaxTransactionAmount) {
		return &CeilingError{Max: l.policy.MaxTransactionAmount}
	}
	return nil
}
