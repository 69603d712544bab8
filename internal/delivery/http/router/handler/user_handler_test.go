package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_Signup_Created(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(uc, newDiscardLogger())

	user := &entity.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  entity.RoleUser,
	}

	uc.EXPECT().
		Signup(mock.Anything, &usecase.SignupInput{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "password123",
		}).
		Return(&usecase.AuthOutput{Token: "signed.jwt.token", User: user}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/signup",
		`{"name":"Test User","email":"test@example.com","password":"password123"}`)

	err := h.Signup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed.jwt.token"`)
	assert.Contains(t, rec.Body.String(), `"email":"test@example.com"`)
	// The password hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Signup_RejectsShortPassword(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(uc, newDiscardLogger())

	c, _ := newJSONContext(http.MethodPost, "/api/users/signup",
		`{"name":"Test User","email":"test@example.com","password":"123"}`)

	err := h.Signup(c)

	require.Error(t, err)
}

func TestUserHandler_Login_OK(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(uc, newDiscardLogger())

	user := &entity.User{
		ID:    uuid.New(),
		Email: "test@example.com",
		Role:  entity.RoleAdmin,
	}

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "test@example.com",
			Password: "password123",
		}).
		Return(&usecase.AuthOutput{Token: "signed.jwt.token", User: user}, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"test@example.com","password":"password123"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed.jwt.token"`)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
