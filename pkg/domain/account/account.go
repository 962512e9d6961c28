package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmountNotPositive is returned when a movement amount is zero or negative.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidArgument)

	// ErrAmountAboveCeiling is returned when an amount exceeds the per-transaction ceiling.
	ErrAmountAboveCeiling = fmt.Errorf("%w: amount must be less than or equal to the per-transaction ceiling", domain.ErrInvalidArgument)

	// ErrSameAccount is returned when a transfer targets the account it comes from.
	ErrSameAccount = fmt.Errorf("%w: transfer must be between different accounts", domain.ErrInvalidArgument)

	// ErrNilAccount is returned when a nil account is provided to an operation.
	ErrNilAccount = fmt.Errorf("%w: nil account", domain.ErrInvalidArgument)

	// ErrDailyLimitExceeded is returned when a transfer would push the source account over its daily limit.
	ErrDailyLimitExceeded = fmt.Errorf("%w: daily limit exceeded", domain.ErrFailedPrecondition)

	// ErrInsufficientBalance is returned when the source balance does not cover the amount.
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", domain.ErrFailedPrecondition)

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("%w: account", domain.ErrNotFound)
)

// CeilingError reports the ceiling an amount exceeded. It matches
// ErrAmountAboveCeiling and domain.ErrInvalidArgument with errors.Is.
type CeilingError struct {
	Max decimal.Decimal
}

func (e *CeilingError) Error() string {
	return fmt.Sprintf("%s: amount must be less than or equal to %s", domain.ErrInvalidArgument, e.Max)
}

func (e *CeilingError) Unwrap() error { return ErrAmountAboveCeiling }

// Key is the bank/branch/number triple. It identifies an account across
// institutions, independently of the internal ID.
type Key struct {
	Bank   string
	Branch string
	Number string
}

func (k Key) String() string {
	return k.Bank + "/" + k.Branch + "/" + k.Number
}

// Account is a holder's bank record: balance, daily transfer limit and the
// ordered history of movements applied to it.
//
// Invariants:
//   - The movement history is append-only and kept in insertion order.
//   - Balance only changes through Ledger operations, each of which appends
//     exactly one movement.
type Account struct {
	ID             uuid.UUID
	HolderName     string
	HolderDocument string
	Key            Key
	DailyLimit     decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	movements []*Movement
}

// Movements returns the account history in insertion order. The slice is a
// copy; the movements themselves are shared.
func (a *Account) Movements() []*Movement {
	out := make([]*Movement, len(a.movements))
	copy(out, a.movements)
	return out
}

// LoadHistory replaces the in-memory history with the one supplied by the
// persistence layer. It is meant for hydration only.
func (a *Account) LoadHistory(movements []*Movement) {
	a.movements = make([]*Movement, len(movements))
	copy(a.movements, movements)
}

// SameAs reports whether both values denote the same physical account.
func (a *Account) SameAs(other *Account) bool {
	return a.Key == other.Key
}

func (a *Account) record(m *Movement) {
	a.movements = append(a.movements, m)
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id             uuid.UUID
	holderName     string
	holderDocument string
	key            Key
	dailyLimit     decimal.Decimal
	balance        decimal.Decimal
	createdAt      time.Time
	updatedAt      time.Time
	movements      []*Movement
}

// New creates a new Builder with a fresh UUID and a zero balance.
func New() *Builder {
	now := time.Now()
	return &Builder{
		id:        uuid.New(),
		balance:   decimal.Zero,
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithHolder sets the holder name and document. Both are mandatory.
func (b *Builder) WithHolder(name, document string) *Builder {
	b.holderName = name
	b.holderDocument = document
	return b
}

// WithKey sets the bank/branch/number triple. All three parts are mandatory.
func (b *Builder) WithKey(bank, branch, number string) *Builder {
	b.key = Key{Bank: bank, Branch: branch, Number: number}
	return b
}

// WithDailyLimit sets the maximum amount that may leave the account by
// transfer within one calendar date.
func (b *Builder) WithDailyLimit(limit decimal.Decimal) *Builder {
	b.dailyLimit = limit
	return b
}

// WithBalance sets the opening balance. Any value is accepted; provisioning
// is not subject to the movement rules.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// WithMovements sets a pre-existing history, oldest first.
func (b *Builder) WithMovements(movements ...*Movement) *Builder {
	b.movements = append(b.movements, movements...)
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.id == uuid.Nil {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidArgument)
	}
	if b.holderName == "" {
		return nil, fmt.Errorf("%w: holder name is required", domain.ErrInvalidArgument)
	}
	if b.holderDocument == "" {
		return nil, fmt.Errorf("%w: holder document is required", domain.ErrInvalidArgument)
	}
	if b.key.Bank == "" || b.key.Branch == "" || b.key.Number == "" {
		return nil, fmt.Errorf("%w: bank, branch and account number are required", domain.ErrInvalidArgument)
	}
	if !b.dailyLimit.IsPositive() {
		return nil, fmt.Errorf("%w: daily limit must be greater than 0", domain.ErrInvalidArgument)
	}
	a := &Account{
		ID:             b.id,
		HolderName:     b.holderName,
		HolderDocument: b.holderDocument,
		Key:            b.key,
		DailyLimit:     b.dailyLimit,
		Balance:        b.balance,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.updatedAt,
	}
	a.LoadHistory(b.movements)
	return a, nil
}
