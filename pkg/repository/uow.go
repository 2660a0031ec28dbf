package repository

import "context"

// UnitOfWork is the transaction boundary for every core operation: all
// repository access obtained inside Do shares one database transaction, so
// balance mutations and their ledger entries commit together or not at all.
type UnitOfWork interface {
	// Do executes fn within a transaction. If fn returns an error the
	// transaction is rolled back and the error is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Repository accessors bound to the current transaction/session.
	UserRepository() UserRepository
	AccountRepository() AccountRepository
	TransactionRepository() TransactionRepository
}
