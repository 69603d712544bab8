package auth

import (
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testHasherConfig() *config.Config {
	return &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	password := "correct horse battery staple"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	assert.False(t, hasher.Check("whatever", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	first, err := hasher.Hash("same password")
	assert.NoError(t, err)
	second, err := hasher.Hash("same password")
	assert.NoError(t, err)

	// bcrypt salts every hash, so two hashes of the same input differ.
	assert.NotEqual(t, first, second)
}
