package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/banking/pkg/repository"
)

func TestUoW_DoCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		assert.NotNil(t, txUow.UserRepository())
		assert.NotNil(t, txUow.AccountRepository())
		assert.NotNil(t, txUow.TransactionRepository())
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Repositories handed out inside Do must run on the transaction connection,
// not a fresh one.
func TestUoW_RepositoriesShareTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE number = \$1`).
		WithArgs("1234", 1).
		WillReturnRows(accountRows())
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		_, err := txUow.AccountRepository().GetByNumber(context.Background(), "1234")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
