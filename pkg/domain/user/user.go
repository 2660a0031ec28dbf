package user

import (
	"errors"
	"time"

	"github.com/amirasaad/banking/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserUnauthorized is returned when login credentials do not match any user.
	ErrUserUnauthorized = errors.New("user unauthorized")
)

// Role classifies a user for authorization decisions downstream.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User represents a registered user. The login password here is unrelated to
// the per-account access code; see the account package.
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // bcrypt hash, never the plain text
	FullName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a User with a hashed password and the default CUSTOMER role.
func New(username, email, password, fullName string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		FullName:  fullName,
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData creates a User from raw data (used for DB hydration or test fixtures).
func NewFromData(
	id uint,
	username, email, password, fullName string,
	role Role,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  password,
		FullName:  fullName,
		Role:      role,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
