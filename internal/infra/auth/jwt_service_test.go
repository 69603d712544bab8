package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testJWTConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test_secret_key_very_long_for_testing"
	cfg.JWT.AccessTTL = ttl

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(7 * 24 * time.Hour))
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.GenerateToken(userID, entity.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(time.Hour))
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	signer, err := NewJWTService(testJWTConfig(time.Hour))
	assert.NoError(t, err)

	verifier, err := NewJWTService(func() *config.Config {
		cfg := testJWTConfig(time.Hour)
		cfg.JWT.Secret = "a_completely_different_secret"

		return cfg
	}())
	assert.NoError(t, err)

	token, err := signer.GenerateToken(uuid.New(), entity.RoleUser)
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig(-time.Minute))
	assert.NoError(t, err)

	token, err := jwtService.GenerateToken(uuid.New(), entity.RoleUser)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingSecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
