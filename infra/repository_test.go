package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	accountdomain "github.com/amirasaad/banking/pkg/domain/account"
	userdomain "github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

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

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "full_name", "role", "created_at", "updated_at"}).
		AddRow(1, "alice", "alice@example.com", "hash", "Alice Kim", "CUSTOMER", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice", 1).
		WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, userdomain.RoleCustomer, u.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	u, err := userdomain.New("alice", "alice@example.com", "secret1", "Alice Kim")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, uint(5), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "number", "access_code", "balance", "user_id", "created_at", "updated_at"}).
		AddRow(3, "1234", "9999", 1000, 7, time.Now(), time.Now())
}

func TestAccountRepository_GetByNumber(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE number = \$1`).
		WithArgs("1234", 1).
		WillReturnRows(accountRows())

	a, err := repo.GetByNumber(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, uint(3), a.ID)
	assert.Equal(t, int64(1000), a.Balance)
}

func TestAccountRepository_GetByNumberForUpdate_LocksRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE number = \$1 (.+) FOR UPDATE`).
		WithArgs("1234", 1).
		WillReturnRows(accountRows())

	a, err := repo.GetByNumberForUpdate(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", a.Number)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByNumber_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByNumber(context.Background(), "0000")
	assert.ErrorIs(t, err, accountdomain.ErrAccountNotFound)
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	a := accountdomain.New("1234", "9999", 7)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, uint(3), a.ID)
}

func TestAccountRepository_Create_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	a := accountdomain.New("1234", "9999", 7)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	assert.Error(t, repo.Create(context.Background(), a))
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	a := accountdomain.New("1234", "9999", 7)
	a.ID = 3
	a.Balance = 600

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(int64(600), sqlmock.AnyArg(), uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateBalance(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "accounts" WHERE "accounts"."id" = \$1`).
		WithArgs(uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 3))
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	a := accountdomain.New("1234", "9999", 7)
	a.ID = 3
	require.NoError(t, a.Deposit(500))
	entry := accountdomain.NewDepositEntry(a, 500, "010-1111-2222")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "transactions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, uint(11), entry.ID)
}

func ledgerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "kind", "amount", "sender", "receiver", "withdraw_account_id", "withdraw_balance", "deposit_account_id", "deposit_balance", "contact", "created_at"}).
		AddRow(1, "WITHDRAW", 100, "1234", "ATM", 3, 900, nil, nil, nil, time.Now())
}

func TestTransactionRepository_ListByAccount_WithdrawFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE withdraw_account_id = \$1 ORDER BY id LIMIT \$2`).
		WithArgs(uint(3), repository.LedgerPageSize).
		WillReturnRows(ledgerRows())

	entries, err := repo.ListByAccount(context.Background(), 3, repository.FilterWithdraw, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, accountdomain.KindWithdraw, entries[0].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByAccount_DepositFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE deposit_account_id = \$1 ORDER BY id LIMIT \$2`).
		WithArgs(uint(3), repository.LedgerPageSize).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ListByAccount(context.Background(), 3, repository.FilterDeposit, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByAccount_AllMatchesEitherSide(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE withdraw_account_id = \$1 OR deposit_account_id = \$2 ORDER BY id LIMIT \$3`).
		WithArgs(uint(3), uint(3), repository.LedgerPageSize).
		WillReturnRows(ledgerRows())

	_, err := repo.ListByAccount(context.Background(), 3, repository.FilterAll, 0)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByAccount_SecondPageOffset(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE withdraw_account_id = \$1 OR deposit_account_id = \$2 ORDER BY id LIMIT \$3 OFFSET \$4`).
		WithArgs(uint(3), uint(3), repository.LedgerPageSize, repository.LedgerPageSize).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ListByAccount(context.Background(), 3, repository.FilterAll, 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
