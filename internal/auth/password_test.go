package auth

import (
	"testing"

	"microlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_SetAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	u := &models.User{Username: "susan", Email: "susan@example.com"}

	require.NoError(t, h.Set(u, "cat"))

	assert.True(t, h.Verify(u, "cat"))
	assert.False(t, h.Verify(u, "dog"))
}

func TestHasher_NeverStoresPlaintext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	u := &models.User{Username: "susan", Email: "susan@example.com"}

	require.NoError(t, h.Set(u, "cat"))
	assert.NotEqual(t, "cat", u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "cat")
}

func TestHasher_SetReplacesHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	u := &models.User{}

	require.NoError(t, h.Set(u, "cat"))
	first := u.PasswordHash
	require.NoError(t, h.Set(u, "bird"))

	assert.NotEqual(t, first, u.PasswordHash)
	assert.False(t, h.Verify(u, "cat"))
	assert.True(t, h.Verify(u, "bird"))
}

func TestHasher_VerifyEmptyHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	u := &models.User{}
	assert.False(t, h.Verify(u, "anything"))
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	h := NewHasher(1000)
	u := &models.User{}
	require.NoError(t, h.Set(u, "cat"))
	assert.True(t, h.Verify(u, "cat"))
}
