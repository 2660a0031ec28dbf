// Package account holds the ledger core's domain entities: the Account
// aggregate, whose balance may only change through the guarded mutators below,
// and the immutable Transaction ledger entry documenting each movement.
package account

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found by number or ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNumberTaken is returned when opening an account whose number is already registered.
	ErrNumberTaken = errors.New("account number already registered")
	// ErrNotOwner is returned when a caller acts on an account they do not own.
	ErrNotOwner = errors.New("not the account owner")
	// ErrInvalidAccessCode is returned when the supplied access code does not
	// match the account's access code.
	ErrInvalidAccessCode = errors.New("access code mismatch")
	// ErrInsufficientFunds is returned when a debit would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAmountNotPositive is returned when a movement amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")
	// ErrSelfTransfer is returned when a transfer names the same account on both sides.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
)

// InitialBalance is the balance minted into every newly opened account,
// in the smallest currency unit.
const InitialBalance int64 = 1000

// Account is the unit of concurrency control. Balance is held in the smallest
// currency unit and is never negative: every debit path runs CheckBalance
// before mutating.
//
// The guard methods are pure field checks so they stay usable from test
// fixtures that never touch a database.
type Account struct {
	ID         uint
	Number     string // unique, externally chosen, fixed-width numeric string
	AccessCode string // shared secret authorizing withdraw/transfer, distinct from the login password
	Balance    int64
	UserID     uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New creates an Account for ownerID with the fixed starting balance.
func New(number, accessCode string, ownerID uint) *Account {
	now := time.Now().UTC()
	return &Account{
		Number:     number,
		AccessCode: accessCode,
		Balance:    InitialBalance,
		UserID:     ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewFromData creates an Account from raw data (used for DB hydration or test fixtures).
func NewFromData(
	id uint,
	number, accessCode string,
	balance int64,
	userID uint,
	created, updated time.Time,
) *Account {
	return &Account{
		ID:         id,
		Number:     number,
		AccessCode: accessCode,
		Balance:    balance,
		UserID:     userID,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}
}

// CheckOwner fails with ErrNotOwner unless userID owns this account.
func (a *Account) CheckOwner(userID uint) error {
	if a.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

// CheckAccessCode fails with ErrInvalidAccessCode unless code matches.
func (a *Account) CheckAccessCode(code string) error {
	if a.AccessCode != code {
		return ErrInvalidAccessCode
	}
	return nil
}

// CheckBalance fails with ErrInsufficientFunds unless the balance covers amount.
func (a *Account) CheckBalance(amount int64) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit credits amount to the balance. Rejects non-positive amounts so the
// aggregate enforces its own invariants even if a caller skips validation.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	a.Balance += amount
	return nil
}

// Withdraw debits amount from the balance, re-checking amount and sufficiency
// first so the non-negativity invariant cannot be bypassed by a caller that
// skipped CheckBalance.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	if err := a.CheckBalance(amount); err != nil {
		return err
	}
	a.Balance -= amount
	return nil
}
