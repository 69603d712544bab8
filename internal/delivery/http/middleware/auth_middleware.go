// Package middleware contains the echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for token authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the session token and resolves it to a live user,
// which it attaches to the request context. The header value is accepted
// either bare or with a "Bearer " prefix.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := strings.TrimSpace(c.Request().Header.Get("Authorization"))
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			return domainerrors.ErrNoToken
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		// The token may outlive the account it was issued for.
		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrTokenUserGone
			}

			return errors.Wrap(err, "failed to resolve token user")
		}

		c.Set(string(deliverycontext.KeyUser), user)

		return next(c)
	}
}

// RequireAdmin rejects non-admin identities. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			return domainerrors.ErrAdminsOnly
		}

		return next(c)
	}
}

// CurrentUser extracts the authenticated user Authenticate attached to the
// request.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(deliverycontext.KeyUser)).(*entity.User)

	return user, ok
}
