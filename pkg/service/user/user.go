// Package user provides business logic for user registration and lookup.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
)

// Service provides user registration and retrieval.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a new user with a hashed password and the CUSTOMER role.
// Usernames are unique; a duplicate fails with user.ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, email, password, fullName string) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		switch _, err := repo.GetByUsername(ctx, username); {
		case err == nil:
			return user.ErrUsernameTaken
		case !errors.Is(err, user.ErrUserNotFound):
			return err
		}
		u, err = user.New(username, email, password, fullName)
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		s.logger.Error("register failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("user registered", "username", username, "userID", u.ID)
	return u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uint) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err = uow.UserRepository().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
