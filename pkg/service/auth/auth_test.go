package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/banking/internal/fixtures/mocks"
	"github.com/amirasaad/banking/pkg/config"
	userdomain "github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	authsvc "github.com/amirasaad/banking/pkg/service/auth"
	"github.com/amirasaad/banking/pkg/utils"
)

func testJwtConfig() *config.Jwt {
	return &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
}

func setupMocks(t *testing.T) (*mocks.MockUnitOfWork, *mocks.MockUserRepository) {
	uow := mocks.NewMockUnitOfWork(t)
	userRepo := mocks.NewMockUserRepository(t)
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()
	uow.EXPECT().UserRepository().Return(userRepo).Maybe()
	return uow, userRepo
}

func testUser(t *testing.T, password string) *userdomain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &userdomain.User{ID: 7, Username: "alice", Password: hash, Role: userdomain.RoleCustomer}
}

func TestLogin_Success(t *testing.T) {
	uow, userRepo := setupMocks(t)
	u := testUser(t, "secret1")
	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").Return(u, nil).Once()

	svc := authsvc.New(uow, testJwtConfig(), slog.Default())
	got, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uow, userRepo := setupMocks(t)
	u := testUser(t, "secret1")
	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").Return(u, nil).Once()

	svc := authsvc.New(uow, testJwtConfig(), slog.Default())
	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized)
}

func TestLogin_UnknownUsernameIndistinguishable(t *testing.T) {
	uow, userRepo := setupMocks(t)
	userRepo.EXPECT().GetByUsername(mock.Anything, "nobody").
		Return(nil, userdomain.ErrUserNotFound).Once()

	svc := authsvc.New(uow, testJwtConfig(), slog.Default())
	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized,
		"unknown usernames must fail identically to wrong passwords")
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	uow, _ := setupMocks(t)
	cfg := testJwtConfig()
	u := &userdomain.User{ID: 7, Username: "alice", Role: userdomain.RoleCustomer}

	svc := authsvc.New(uow, cfg, slog.Default())
	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, string(userdomain.RoleCustomer), claims["role"])
	assert.NotEmpty(t, claims["jti"])

	id, err := authsvc.CurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestCurrentUserID_MissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "alice"})
	_, err := authsvc.CurrentUserID(token)
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized)
}

func TestGenerateToken_DifferentJTIPerToken(t *testing.T) {
	uow, _ := setupMocks(t)
	svc := authsvc.New(uow, testJwtConfig(), slog.Default())
	u := &userdomain.User{ID: 7, Username: "alice", Role: userdomain.RoleCustomer}

	first, err := svc.GenerateToken(u)
	require.NoError(t, err)
	second, err := svc.GenerateToken(u)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
