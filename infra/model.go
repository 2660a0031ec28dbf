package infra

import (
	"time"

	"gorm.io/gorm"
)

// User is the persistence model for domain users.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null;size:50"`
	Email     string `gorm:"not null;size:255"`
	Password  string `gorm:"not null"`
	FullName  string `gorm:"size:100"`
	Role      string `gorm:"not null;size:20;default:'CUSTOMER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is the persistence model for domain accounts.
type Account struct {
	ID         uint   `gorm:"primaryKey"`
	Number     string `gorm:"uniqueIndex;not null;size:4"`
	AccessCode string `gorm:"not null;size:4"`
	Balance    int64  `gorm:"not null"`
	UserID     uint   `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transaction is the persistence model for ledger entries. Rows are only ever
// inserted; there is no UpdatedAt because an entry never changes.
type Transaction struct {
	ID                uint   `gorm:"primaryKey"`
	Kind              string `gorm:"not null;size:10"`
	Amount            int64  `gorm:"not null"`
	Sender            string `gorm:"not null;size:32"`
	Receiver          string `gorm:"not null;size:32"`
	WithdrawAccountID *uint  `gorm:"index"`
	WithdrawBalance   *int64
	DepositAccountID  *uint `gorm:"index"`
	DepositBalance    *int64
	Contact           *string `gorm:"size:20"`
	CreatedAt         time.Time
}

// Migrate creates or updates the schema for all persistence models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Account{}, &Transaction{})
}
