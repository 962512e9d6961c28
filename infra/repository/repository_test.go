package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newDomainAccount(t *testing.T) *account.Account {
	t.Helper()
	a, err := account.New().
		WithHolder("Maria Silva", "123.456.789-00").
		WithKey("001", "0001", "12345-6").
		WithDailyLimit(decimal.NewFromInt(500)).
		WithBalance(decimal.NewFromInt(100)).
		WithCreatedAt(time.Now().UTC()).
		Build()
	require.NoError(t, err)
	return a
}

var accountColumns = []string{
	"id", "holder_name", "holder_document", "bank", "branch", "number",
	"daily_limit", "balance", "created_at", "updated_at",
}

func TestAccountRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acct := newDomainAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(repo.Create(context.Background(), acct))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), acct)
	require.ErrorIs(err, domain.ErrAlreadyExists)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_Get(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(id.String(), "Maria Silva", "123", "001", "0001", "1", "500.00000000", "-12.50000000", now, now)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(id, 1).WillReturnRows(rows)

	acct, err := repo.Get(context.Background(), id)
	require.NoError(err)
	assert.Equal(id, acct.ID)
	assert.Equal(account.Key{Bank: "001", Branch: "0001", Number: "1"}, acct.Key)
	assert.True(decimal.RequireFromString("-12.5").Equal(acct.Balance))
	assert.True(decimal.NewFromInt(500).Equal(acct.DailyLimit))
	assert.Empty(acct.Movements())

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err = repo.Get(context.Background(), uuid.New())
	require.ErrorIs(err, account.ErrAccountNotFound)
	require.ErrorIs(err, domain.ErrNotFound)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByKey(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(id.String(), "Ana", "9", "237", "1234", "777", "100", "0", now, now)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE bank = \$1 AND branch = \$2 AND number = \$3 ORDER BY "accounts"\."id" LIMIT \$4`).
		WithArgs("237", "1234", "777", 1).WillReturnRows(rows)

	acct, err := repo.GetByKey(context.Background(), account.Key{Bank: "237", Branch: "1234", Number: "777"})
	require.NoError(err)
	require.Equal(id, acct.ID)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acct := newDomainAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(acct.Balance, sqlmock.AnyArg(), acct.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(repo.UpdateBalance(context.Background(), acct))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateBalance(context.Background(), acct)
	require.ErrorIs(err, account.ErrAccountNotFound)
	require.NoError(mock.ExpectationsWereMet())
}

func TestMovementRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	m := account.MovementFromData(uuid.New(),
		uuid.NullUUID{UUID: uuid.New(), Valid: true},
		uuid.NullUUID{},
		decimal.NewFromInt(10), time.Now().UTC())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "movements" (.+) VALUES (.+) RETURNING "seq"`).
		WithArgs(m.ID(), m.SourceID(), m.DestinationID(), m.Amount(), m.Timestamp()).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(repo.Create(context.Background(), m))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "movements" (.+) VALUES (.+) RETURNING "seq"`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	require.Error(repo.Create(context.Background(), m))
	require.NoError(mock.ExpectationsWereMet())
}

func TestMovementRepository_ListByAccount(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	repo := NewMovementRepository(db)

	accountID, other := uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"seq", "id", "source_account_id", "destination_account_id", "amount", "timestamp"}).
		AddRow(1, first.String(), nil, accountID.String(), "50", ts).
		AddRow(2, second.String(), accountID.String(), other.String(), "20.5", ts.Add(time.Minute))
	mock.ExpectQuery(`SELECT \* FROM "movements" WHERE source_account_id = \$1 OR destination_account_id = \$2 ORDER BY seq`).
		WithArgs(accountID, accountID).WillReturnRows(rows)

	movements, err := repo.ListByAccount(context.Background(), accountID)
	require.NoError(err)
	require.Len(movements, 2)

	assert.Equal(first, movements[0].ID())
	assert.Equal(account.KindDeposit, movements[0].Kind())
	assert.Equal(second, movements[1].ID())
	assert.Equal(account.KindTransfer, movements[1].Kind())
	assert.True(decimal.RequireFromString("-20.5").Equal(movements[1].EffectOn(accountID)))
	require.NoError(mock.ExpectationsWereMet())
}
