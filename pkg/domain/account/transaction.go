package account

import "time"

// Kind discriminates the three ledger entry shapes.
type Kind string

const (
	KindDeposit  Kind = "DEPOSIT"
	KindWithdraw Kind = "WITHDRAW"
	KindTransfer Kind = "TRANSFER"
)

// ATMLabel is the counterparty label recorded for movements that originate
// from or terminate at an unauthenticated external channel.
const ATMLabel = "ATM"

// Transaction is one immutable ledger entry. The balance snapshots equal the
// referenced account's balance immediately after the movement was applied, so
// the ledger reconstructs balances without replaying business logic.
//
// A DEPOSIT entry carries only the deposit side, a WITHDRAW entry only the
// withdraw side, a TRANSFER entry both.
type Transaction struct {
	ID                uint
	Kind              Kind
	Amount            int64
	Sender            string
	Receiver          string
	WithdrawAccountID *uint
	WithdrawBalance   *int64
	DepositAccountID  *uint
	DepositBalance    *int64
	Contact           *string // phone contact for cash deposits with no authenticated owner
	CreatedAt         time.Time
}

// NewDepositEntry records a credit applied to acct. Call after the deposit
// has been applied so the snapshot carries the post-operation balance.
func NewDepositEntry(acct *Account, amount int64, contact string) *Transaction {
	tx := &Transaction{
		Kind:             KindDeposit,
		Amount:           amount,
		Sender:           ATMLabel,
		Receiver:         acct.Number,
		DepositAccountID: &acct.ID,
		DepositBalance:   ptr(acct.Balance),
		CreatedAt:        time.Now().UTC(),
	}
	if contact != "" {
		tx.Contact = &contact
	}
	return tx
}

// NewWithdrawEntry records a debit applied to acct, post-mutation.
func NewWithdrawEntry(acct *Account, amount int64) *Transaction {
	return &Transaction{
		Kind:              KindWithdraw,
		Amount:            amount,
		Sender:            acct.Number,
		Receiver:          ATMLabel,
		WithdrawAccountID: &acct.ID,
		WithdrawBalance:   ptr(acct.Balance),
		CreatedAt:         time.Now().UTC(),
	}
}

// NewTransferEntry records one movement between two accounts, carrying both
// post-mutation balance snapshots. Exactly one entry documents a transfer.
func NewTransferEntry(from, to *Account, amount int64) *Transaction {
	return &Transaction{
		Kind:              KindTransfer,
		Amount:            amount,
		Sender:            from.Number,
		Receiver:          to.Number,
		WithdrawAccountID: &from.ID,
		WithdrawBalance:   ptr(from.Balance),
		DepositAccountID:  &to.ID,
		DepositBalance:    ptr(to.Balance),
		CreatedAt:         time.Now().UTC(),
	}
}

func ptr[T any](v T) *T { return &v }
