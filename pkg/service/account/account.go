// Package account implements the ledger core: the only component that mutates
// account balances. Every operation runs inside one UnitOfWork transaction and
// resolves the accounts it touches with row-level write locks, so the
// read-check-write sequence is never interleaved by a concurrent writer, even
// across processes.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, account.ErrAccountNotFound)
}

// Service provides the account operations: open, list, close, deposit,
// withdraw, transfer, and the ledger listing.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ListByOwner returns the owner's profile and every account they own.
func (s *Service) ListByOwner(ctx context.Context, ownerID uint) (owner *user.User, accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		owner, err = uow.UserRepository().Get(ctx, ownerID)
		if err != nil {
			return err
		}
		accounts, err = uow.AccountRepository().ListByUser(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return owner, accounts, nil
}

// Open mints a new account for ownerID under the requested number with the
// fixed starting balance. The number must not already be registered.
func (s *Service) Open(ctx context.Context, ownerID uint, number, accessCode string) (a *account.Account, err error) {
	logger := s.logger.With("op", "open", "number", number, "ownerID", ownerID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.UserRepository().Get(ctx, ownerID); err != nil {
			return err
		}
		switch _, err := uow.AccountRepository().GetByNumber(ctx, number); {
		case err == nil:
			return account.ErrNumberTaken
		case !isNotFound(err):
			return err
		}
		a = account.New(number, accessCode, ownerID)
		return uow.AccountRepository().Create(ctx, a)
	})
	if err != nil {
		logger.Error("open account failed", "error", err)
		return nil, err
	}
	logger.Info("account opened", "accountID", a.ID)
	return a, nil
}

// Close deletes the account, owner only. Closure does not require a zero
// balance and leaves existing ledger entries referencing the deleted account;
// both are accepted historical-record trade-offs.
func (s *Service) Close(ctx context.Context, number string, callerID uint) error {
	logger := s.logger.With("op", "close", "number", number, "callerID", callerID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.AccountRepository().GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err := a.CheckOwner(callerID); err != nil {
			return err
		}
		return uow.AccountRepository().Delete(ctx, a.ID)
	})
	if err != nil {
		logger.Error("close account failed", "error", err)
		return err
	}
	logger.Info("account closed")
	return nil
}

// Deposit credits amount to the account and appends the matching DEPOSIT
// ledger entry. Deposits originate from an unauthenticated external channel,
// so no caller identity is checked; contact optionally records who paid in.
func (s *Service) Deposit(ctx context.Context, number string, amount int64, contact string) (a *account.Account, entry *account.Transaction, err error) {
	logger := s.logger.With("op", "deposit", "number", number, "amount", amount)
	if amount <= 0 {
		return nil, nil, account.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.AccountRepository().GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err = a.Deposit(amount); err != nil {
			return err
		}
		if err = uow.AccountRepository().UpdateBalance(ctx, a); err != nil {
			return err
		}
		entry = account.NewDepositEntry(a, amount, contact)
		return uow.TransactionRepository().Create(ctx, entry)
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, nil, err
	}
	logger.Info("deposit applied", "balance", a.Balance)
	return a, entry, nil
}

// Withdraw debits amount from the account and appends the matching WITHDRAW
// ledger entry. The guard order is load-bearing: ownership before access code
// before funds, so error responses never leak balance information to a
// non-owner nor ownership status ahead of authentication.
func (s *Service) Withdraw(ctx context.Context, number string, amount int64, accessCode string, callerID uint) (a *account.Account, entry *account.Transaction, err error) {
	logger := s.logger.With("op", "withdraw", "number", number, "amount", amount, "callerID", callerID)
	if amount <= 0 {
		return nil, nil, account.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.AccountRepository().GetByNumberForUpdate(ctx, number)
		if err != nil {
			return err
		}
		if err = a.CheckOwner(callerID); err != nil {
			return err
		}
		if err = a.CheckAccessCode(accessCode); err != nil {
			return err
		}
		if err = a.Withdraw(amount); err != nil {
			return err
		}
		if err = uow.AccountRepository().UpdateBalance(ctx, a); err != nil {
			return err
		}
		entry = account.NewWithdrawEntry(a, amount)
		return uow.TransactionRepository().Create(ctx, entry)
	})
	if err != nil {
		logger.Error("withdraw failed", "error", err)
		return nil, nil, err
	}
	logger.Info("withdraw applied", "balance", a.Balance)
	return a, entry, nil
}

// Transfer moves amount between two accounts, debiting the withdraw side and
// crediting the deposit side in the same transaction with exactly one TRANSFER
// ledger entry. Both rows are locked in ascending account-number order so two
// opposite transfers between the same pair cannot deadlock; the existence
// checks still report the withdraw side first. The withdraw-side account is
// returned as the acting party's view.
func (s *Service) Transfer(ctx context.Context, fromNumber, toNumber string, amount int64, accessCode string, callerID uint) (from *account.Account, entry *account.Transaction, err error) {
	logger := s.logger.With("op", "transfer", "from", fromNumber, "to", toNumber, "amount", amount, "callerID", callerID)
	if fromNumber == toNumber {
		return nil, nil, account.ErrSelfTransfer
	}
	if amount <= 0 {
		return nil, nil, account.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var to *account.Account
		from, to, err = lockPair(ctx, uow.AccountRepository(), fromNumber, toNumber)
		if err != nil {
			return err
		}
		if err = from.CheckOwner(callerID); err != nil {
			return err
		}
		if err = from.CheckAccessCode(accessCode); err != nil {
			return err
		}
		if err = from.Withdraw(amount); err != nil {
			return err
		}
		if err = to.Deposit(amount); err != nil {
			return err
		}
		if err = uow.AccountRepository().UpdateBalance(ctx, from); err != nil {
			return err
		}
		if err = uow.AccountRepository().UpdateBalance(ctx, to); err != nil {
			return err
		}
		entry = account.NewTransferEntry(from, to, amount)
		return uow.TransactionRepository().Create(ctx, entry)
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, nil, err
	}
	logger.Info("transfer applied", "balance", from.Balance)
	return from, entry, nil
}

// Transactions lists the account's ledger page, owner only. WITHDRAW matches
// entries where this account is the withdraw side, DEPOSIT the deposit side,
// anything else either side. Pages hold repository.LedgerPageSize entries,
// zero-indexed, in creation order ascending.
func (s *Service) Transactions(ctx context.Context, number string, callerID uint, filter repository.LedgerFilter, page int) (entries []*account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.AccountRepository().GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := a.CheckOwner(callerID); err != nil {
			return err
		}
		entries, err = uow.TransactionRepository().ListByAccount(ctx, a.ID, filter, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// lockPair resolves and write-locks both transfer accounts, acquiring the
// locks in ascending-number order regardless of transfer direction.
func lockPair(ctx context.Context, repo repository.AccountRepository, fromNumber, toNumber string) (from, to *account.Account, err error) {
	first, second := fromNumber, toNumber
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*account.Account, 2)
	errs := make(map[string]error, 2)
	for _, n := range []string{first, second} {
		locked[n], errs[n] = repo.GetByNumberForUpdate(ctx, n)
	}
	if err := errs[fromNumber]; err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("withdraw account: %w", account.ErrAccountNotFound)
		}
		return nil, nil, err
	}
	if err := errs[toNumber]; err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("deposit account: %w", account.ErrAccountNotFound)
		}
		return nil, nil, err
	}
	return locked[fromNumber], locked[toNumber], nil
}
