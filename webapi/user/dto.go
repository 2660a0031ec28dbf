package user

import (
	"time"

	domainuser "github.com/amirasaad/banking/pkg/domain/user"
)

// RegisterRequest carries a new user registration. Field bounds mirror the
// account opening rules: short human-chosen identifiers, validated up front.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=20,alphanum"`
	Password string `json:"password" validate:"required,min=4,max=20"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=20"`
}

// UserResponse is the public view of a user; the password hash never leaves
// the service.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domainuser.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
