package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddleware_Authenticate_NoToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	c, _ := newAuthTestContext(t, "")

	err := m.Authenticate(okHandler)(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoToken)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	tokenSvc.EXPECT().
		ValidateToken("garbage").
		Return(nil, domainerrors.ErrInvalidToken)

	c, _ := newAuthTestContext(t, "Bearer garbage")

	err := m.Authenticate(okHandler)(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthMiddleware_Authenticate_DeletedUser(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	userID := uuid.New()
	tokenSvc.EXPECT().
		ValidateToken("valid.token").
		Return(&service.Claims{UserID: userID, Role: entity.RoleUser}, nil)
	userRepo.EXPECT().
		FindByID(mock.Anything, userID).
		Return(nil, repository.ErrUserNotFound)

	c, _ := newAuthTestContext(t, "Bearer valid.token")

	err := m.Authenticate(okHandler)(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenUserGone)
}

func TestAuthMiddleware_Authenticate_BareTokenAccepted(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	user := &entity.User{ID: uuid.New(), Email: "user@test.com", Role: entity.RoleUser}
	tokenSvc.EXPECT().
		ValidateToken("valid.token").
		Return(&service.Claims{UserID: user.ID, Role: user.Role}, nil)
	userRepo.EXPECT().
		FindByID(mock.Anything, user.ID).
		Return(user, nil)

	// No "Bearer " prefix, the raw token alone is accepted too.
	c, rec := newAuthTestContext(t, "valid.token")

	err := m.Authenticate(func(c echo.Context) error {
		current, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, current.ID)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RequireAdmin_RejectsRegularUser(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	c, _ := newAuthTestContext(t, "")
	c.Set(string(deliverycontext.KeyUser), &entity.User{ID: uuid.New(), Role: entity.RoleUser})

	err := m.RequireAdmin(okHandler)(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAdminsOnly)
}

func TestAuthMiddleware_RequireAdmin_AllowsAdmin(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	c, rec := newAuthTestContext(t, "")
	c.Set(string(deliverycontext.KeyUser), &entity.User{ID: uuid.New(), Role: entity.RoleAdmin})

	err := m.RequireAdmin(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
