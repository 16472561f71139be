package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secretpassword", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secretpassword", hash)
	assert.True(t, VerifyPassword(hash, "secretpassword"))
	assert.False(t, VerifyPassword(hash, "secretpassworD"))

	again, err := HashPassword("secretpassword", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "each hash carries its own salt")
}

func TestHashPassword_CostFallback(t *testing.T) {
	hash, err := HashPassword("pw", 1)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("", "pw"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "pw"))
}

func TestBurnPasswordCheck(t *testing.T) {
	assert.NotPanics(t, func() { BurnPasswordCheck("whatever") })
	assert.NotEmpty(t, dummyHash)
}
