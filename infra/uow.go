package infra

import (
	"context"

	"github.com/amirasaad/banking/pkg/repository"
	"gorm.io/gorm"
)

// UoW binds the repository interfaces to one gorm transaction. Every
// repository handed out inside Do shares the same session, so a ledger entry
// and the balance change it documents commit together or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary. A returned error rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the bare connection otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository implements repository.UnitOfWork.
func (u *UoW) UserRepository() repository.UserRepository {
	return &userRepository{db: u.session()}
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() repository.AccountRepository {
	return &accountRepository{db: u.session()}
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() repository.TransactionRepository {
	return &transactionRepository{db: u.session()}
}
