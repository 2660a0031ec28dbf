package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/banking/internal/fixtures/mocks"
	userdomain "github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	usersvc "github.com/amirasaad/banking/pkg/service/user"
	userapi "github.com/amirasaad/banking/webapi/user"
)

func setupApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository) {
	t.Helper()
	uow := mocks.NewMockUnitOfWork(t)
	userRepo := mocks.NewMockUserRepository(t)
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()
	uow.EXPECT().UserRepository().Return(userRepo).Maybe()

	app := fiber.New()
	userapi.Routes(app, usersvc.New(uow, slog.Default()))
	return app, userRepo
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegister_Created(t *testing.T) {
	app, userRepo := setupApp(t)

	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").
		Return(nil, userdomain.ErrUserNotFound).Once()
	userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	resp := postJSON(t, app, "/user",
		`{"username":"alice","password":"secret1","email":"alice@example.com","full_name":"Alice Kim"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "alice", envelope.Data.Username)
	assert.Empty(t, envelope.Data.Password, "password must never be serialized")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	app, userRepo := setupApp(t)

	userRepo.EXPECT().GetByUsername(mock.Anything, "alice").
		Return(&userdomain.User{ID: 1, Username: "alice"}, nil).Once()

	resp := postJSON(t, app, "/user",
		`{"username":"alice","password":"secret1","email":"alice@example.com","full_name":"Alice Kim"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
}

func TestRegister_ValidationFailure(t *testing.T) {
	app, _ := setupApp(t)

	// Missing email, password too short.
	resp := postJSON(t, app, "/user", `{"username":"alice","password":"x","full_name":"Alice Kim"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_MalformedBody(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/user", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
