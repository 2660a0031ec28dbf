package infra

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uint) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(&m), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(&m), nil
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := User{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.getByNumber(r.db.WithContext(ctx), number)
}

// GetByNumberForUpdate resolves the account under SELECT ... FOR UPDATE. The
// row lock is held until the surrounding transaction commits or rolls back.
func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.getByNumber(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}),
		number,
	)
}

func (r *accountRepository) getByNumber(db *gorm.DB, number string) (*account.Account, error) {
	var m Account
	if err := db.Where("number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return toDomainAccount(&m), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uint) ([]*account.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	accounts := make([]*account.Account, 0, len(ms))
	for i := range ms {
		accounts = append(accounts, toDomainAccount(&ms[i]))
	}
	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := Account{
		Number:     a.Number,
		AccessCode: a.AccessCode,
		Balance:    a.Balance,
		UserID:     a.UserID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, a *account.Account) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"balance":    a.Balance,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Account{}, id).Error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	m := Transaction{
		Kind:              string(tx.Kind),
		Amount:            tx.Amount,
		Sender:            tx.Sender,
		Receiver:          tx.Receiver,
		WithdrawAccountID: tx.WithdrawAccountID,
		WithdrawBalance:   tx.WithdrawBalance,
		DepositAccountID:  tx.DepositAccountID,
		DepositBalance:    tx.DepositBalance,
		Contact:           tx.Contact,
		CreatedAt:         tx.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// ListByAccount pages the account's ledger in creation order. WITHDRAW and
// DEPOSIT match the respective side; any other filter matches either side.
// An account cannot transfer to itself, so the OR cannot double-match a row.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uint, filter repository.LedgerFilter, page int) ([]*account.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{})
	switch filter {
	case repository.FilterWithdraw:
		q = q.Where("withdraw_account_id = ?", accountID)
	case repository.FilterDeposit:
		q = q.Where("deposit_account_id = ?", accountID)
	default:
		q = q.Where("withdraw_account_id = ? OR deposit_account_id = ?", accountID, accountID)
	}

	var ms []Transaction
	err := q.Order("id").
		Offset(page * repository.LedgerPageSize).
		Limit(repository.LedgerPageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*account.Transaction, 0, len(ms))
	for i := range ms {
		entries = append(entries, toDomainTransaction(&ms[i]))
	}
	return entries, nil
}

func toDomainUser(m *User) *user.User {
	return user.NewFromData(m.ID, m.Username, m.Email, m.Password, m.FullName, user.Role(m.Role), m.CreatedAt, m.UpdatedAt)
}

func toDomainAccount(m *Account) *account.Account {
	return account.NewFromData(m.ID, m.Number, m.AccessCode, m.Balance, m.UserID, m.CreatedAt, m.UpdatedAt)
}

func toDomainTransaction(m *Transaction) *account.Transaction {
	return &account.Transaction{
		ID:                m.ID,
		Kind:              account.Kind(m.Kind),
		Amount:            m.Amount,
		Sender:            m.Sender,
		Receiver:          m.Receiver,
		WithdrawAccountID: m.WithdrawAccountID,
		WithdrawBalance:   m.WithdrawBalance,
		DepositAccountID:  m.DepositAccountID,
		DepositBalance:    m.DepositBalance,
		Contact:           m.Contact,
		CreatedAt:         m.CreatedAt,
	}
}
