// Package auth is the authentication boundary: it verifies login credentials,
// issues JWTs, and resolves the caller identity the ledger core trusts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/amirasaad/banking/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash keeps the bcrypt comparison on the unknown-username path, so
// response timing does not reveal whether a username exists.
const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service authenticates users and issues/verifies HS256 JWTs. The signing
// secret comes from configuration loaded at startup, never a compile-time
// literal.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork, JWT config, and logger.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies username and password. Unknown usernames and wrong passwords
// both fail with user.ErrUserUnauthorized, indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (u *user.User, err error) {
	log := s.logger.With("op", "login", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err = uow.UserRepository().GetByUsername(ctx, username)
		if err != nil {
			utils.CheckPasswordHash(password, dummyHash)
			if errors.Is(err, user.ErrUserNotFound) {
				return user.ErrUserUnauthorized
			}
			return err
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		log.Error("login failed", "error", err)
		return nil, err
	}
	log.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a signed HS256 token carrying the user identity and
// role, with the configured expiry.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = float64(u.ID)
	claims["username"] = u.Username
	claims["role"] = string(u.Role)
	claims["jti"] = uuid.NewString()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "userID", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// CurrentUserID extracts the caller's user ID from a verified token. The
// middleware has already checked the signature and expiry; this only reads
// the claim.
func CurrentUserID(token *jwt.Token) (uint, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, fmt.Errorf("%w: missing user_id claim", user.ErrUserUnauthorized)
	}
	return uint(raw), nil
}
