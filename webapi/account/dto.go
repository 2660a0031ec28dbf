package account

import (
	"time"

	"github.com/amirasaad/banking/pkg/domain/account"
)

// OpenAccountRequest carries the desired account number and access code.
// Both are fixed four-digit strings chosen by the owner.
type OpenAccountRequest struct {
	Number     string `json:"number" validate:"required,len=4,numeric"`
	AccessCode string `json:"access_code" validate:"required,len=4,numeric"`
}

// DepositRequest is accepted without authentication, so it names the target
// account and a contact number for the receipt.
type DepositRequest struct {
	Number  string `json:"number" validate:"required,len=4,numeric"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Contact string `json:"contact" validate:"required,min=3,max=20"`
}

type WithdrawRequest struct {
	Number     string `json:"number" validate:"required,len=4,numeric"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	AccessCode string `json:"access_code" validate:"required,len=4,numeric"`
}

type TransferRequest struct {
	FromNumber string `json:"from_number" validate:"required,len=4,numeric"`
	ToNumber   string `json:"to_number" validate:"required,len=4,numeric"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	AccessCode string `json:"access_code" validate:"required,len=4,numeric"`
}

// AccountResponse is the public view of an account. The access code is
// write-only and never serialized back.
type AccountResponse struct {
	ID        uint      `json:"id"`
	Number    string    `json:"number"`
	Balance   int64     `json:"balance"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionResponse is a single ledger entry.
type TransactionResponse struct {
	ID              uint      `json:"id"`
	Kind            string    `json:"kind"`
	Amount          int64     `json:"amount"`
	Sender          string    `json:"sender"`
	Receiver        string    `json:"receiver"`
	WithdrawBalance *int64    `json:"withdraw_balance,omitempty"`
	DepositBalance  *int64    `json:"deposit_balance,omitempty"`
	Contact         *string   `json:"contact,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Balance:   a.Balance,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
	}
}

func toAccountResponses(accounts []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func toTransactionResponse(t *account.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Sender:          t.Sender,
		Receiver:        t.Receiver,
		WithdrawBalance: t.WithdrawBalance,
		DepositBalance:  t.DepositBalance,
		Contact:         t.Contact,
		CreatedAt:       t.CreatedAt,
	}
}

func toTransactionResponses(entries []*account.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, toTransactionResponse(t))
	}
	return out
}
