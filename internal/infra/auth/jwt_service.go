// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing session tokens.
	accessTTL time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:    cfg.JWT.Secret,
		accessTTL: cfg.JWT.AccessTTL,
	}, nil
}

// GenerateToken creates a signed HS256 token carrying the user id and role.
func (s *jwtService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),              // Subject (who the token is for)
		"role": role.String(),                // Role at signing time
		"iat":  now.Unix(),                   // Issued At
		"exp":  now.Add(s.accessTTL).Unix(),  // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and extracts its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims")
	}

	subject, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, errors.New("token subject missing")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.New("token subject is not a valid user id")
	}

	role, _ := mapClaims["role"].(string)

	return &service.Claims{
		UserID: userID,
		Role:   entity.Role(role),
	}, nil
}
