// Package repository defines the persistence boundary of the ledger core:
// per-aggregate repository interfaces and the UnitOfWork that binds them to
// one database transaction.
package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
)

// LedgerFilter selects which side of the ledger a listing matches.
// Any value other than FilterWithdraw or FilterDeposit behaves as FilterAll.
type LedgerFilter string

const (
	FilterWithdraw LedgerFilter = "WITHDRAW"
	FilterDeposit  LedgerFilter = "DEPOSIT"
	FilterAll      LedgerFilter = "ALL"
)

// LedgerPageSize is the fixed page size of ledger listings; pages are
// zero-indexed and ordered by entry ID ascending (creation order).
const LedgerPageSize = 5

// UserRepository defines user data access operations.
type UserRepository interface {
	Get(ctx context.Context, id uint) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}

// AccountRepository defines account data access operations.
//
// GetByNumberForUpdate acquires a row-level write lock (SELECT ... FOR UPDATE)
// held until the surrounding transaction ends; every balance-mutating path
// must resolve its accounts through it so concurrent writers serialize on the
// row instead of racing the read-check-write sequence.
type AccountRepository interface {
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error)
	ListByUser(ctx context.Context, userID uint) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	// UpdateBalance persists a balance already mutated in memory; nothing in
	// the core relies on ambient change tracking.
	UpdateBalance(ctx context.Context, a *account.Account) error
	Delete(ctx context.Context, id uint) error
}

// TransactionRepository defines ledger entry access. The ledger is
// append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	ListByAccount(ctx context.Context, accountID uint, filter LedgerFilter, page int) ([]*account.Transaction, error)
}
