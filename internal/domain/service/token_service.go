package service

import (
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Claims carries the verified content of a session token: who the token is
// for and what role they held when it was signed.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
}

// TokenService defines the interface for generating and validating session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed, time-limited token for the given user.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken checks a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
