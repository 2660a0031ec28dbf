package account_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsWithInitialBalance(t *testing.T) {
	a := account.New("1234", "9999", 7)
	assert.Equal(t, "1234", a.Number)
	assert.Equal(t, "9999", a.AccessCode)
	assert.Equal(t, account.InitialBalance, a.Balance)
	assert.Equal(t, uint(7), a.UserID)
}

func TestCheckOwner(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.CheckOwner(7))
	assert.ErrorIs(t, a.CheckOwner(8), account.ErrNotOwner)
}

func TestCheckAccessCode(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.CheckAccessCode("9999"))
	assert.ErrorIs(t, a.CheckAccessCode("0000"), account.ErrInvalidAccessCode)
}

func TestCheckBalance(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.CheckBalance(account.InitialBalance))
	assert.ErrorIs(t, a.CheckBalance(account.InitialBalance+1), account.ErrInsufficientFunds)
}

func TestDeposit(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.Deposit(500))
	assert.Equal(t, account.InitialBalance+500, a.Balance)

	assert.ErrorIs(t, a.Deposit(0), account.ErrAmountNotPositive)
	assert.ErrorIs(t, a.Deposit(-10), account.ErrAmountNotPositive)
	assert.Equal(t, account.InitialBalance+500, a.Balance, "failed deposit must not change balance")
}

func TestWithdraw(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.Withdraw(300))
	assert.Equal(t, account.InitialBalance-300, a.Balance)

	assert.ErrorIs(t, a.Withdraw(0), account.ErrAmountNotPositive)
	assert.ErrorIs(t, a.Withdraw(-5), account.ErrAmountNotPositive)
	assert.ErrorIs(t, a.Withdraw(account.InitialBalance), account.ErrInsufficientFunds)
	assert.Equal(t, account.InitialBalance-300, a.Balance, "failed withdraw must not change balance")
}

func TestWithdraw_ExactBalance(t *testing.T) {
	a := account.New("1234", "9999", 7)
	require.NoError(t, a.Withdraw(account.InitialBalance))
	assert.Equal(t, int64(0), a.Balance)
}

func TestNewDepositEntry(t *testing.T) {
	a := account.New("1234", "9999", 7)
	a.ID = 3
	require.NoError(t, a.Deposit(700))

	e := account.NewDepositEntry(a, 700, "010-2222-3333")
	assert.Equal(t, account.KindDeposit, e.Kind)
	assert.Equal(t, int64(700), e.Amount)
	assert.Equal(t, account.ATMLabel, e.Sender)
	assert.Equal(t, "1234", e.Receiver)
	assert.Nil(t, e.WithdrawAccountID)
	require.NotNil(t, e.DepositAccountID)
	assert.Equal(t, uint(3), *e.DepositAccountID)
	require.NotNil(t, e.DepositBalance)
	assert.Equal(t, a.Balance, *e.DepositBalance)
	require.NotNil(t, e.Contact)
	assert.Equal(t, "010-2222-3333", *e.Contact)
}

func TestNewWithdrawEntry(t *testing.T) {
	a := account.New("1234", "9999", 7)
	a.ID = 3
	require.NoError(t, a.Withdraw(100))

	e := account.NewWithdrawEntry(a, 100)
	assert.Equal(t, account.KindWithdraw, e.Kind)
	assert.Equal(t, "1234", e.Sender)
	assert.Equal(t, account.ATMLabel, e.Receiver)
	require.NotNil(t, e.WithdrawAccountID)
	assert.Equal(t, uint(3), *e.WithdrawAccountID)
	require.NotNil(t, e.WithdrawBalance)
	assert.Equal(t, a.Balance, *e.WithdrawBalance)
	assert.Nil(t, e.DepositAccountID)
	assert.Nil(t, e.Contact)
}

func TestNewTransferEntry_SnapshotsBothBalances(t *testing.T) {
	from := account.New("1111", "9999", 7)
	from.ID = 1
	to := account.New("2222", "8888", 8)
	to.ID = 2
	require.NoError(t, from.Withdraw(400))
	require.NoError(t, to.Deposit(400))

	e := account.NewTransferEntry(from, to, 400)
	assert.Equal(t, account.KindTransfer, e.Kind)
	assert.Equal(t, "1111", e.Sender)
	assert.Equal(t, "2222", e.Receiver)
	require.NotNil(t, e.WithdrawBalance)
	assert.Equal(t, account.InitialBalance-400, *e.WithdrawBalance)
	require.NotNil(t, e.DepositBalance)
	assert.Equal(t, account.InitialBalance+400, *e.DepositBalance)
}

func TestErrorsAreDistinct(t *testing.T) {
	errs := []error{
		account.ErrAccountNotFound,
		account.ErrNumberTaken,
		account.ErrNotOwner,
		account.ErrInvalidAccessCode,
		account.ErrInsufficientFunds,
		account.ErrAmountNotPositive,
		account.ErrSelfTransfer,
	}
	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}
