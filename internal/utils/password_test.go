package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Password123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)

	assert.True(t, CheckPasswordHash("Password123", hash))
	assert.False(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("Password123", 4)
	require.NoError(t, err)

	second, err := HashPassword("Password123", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
