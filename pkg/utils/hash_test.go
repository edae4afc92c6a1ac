package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("12345")
	require.NoError(t, err)
	assert.NotEqual(t, "12345", hashed)
	assert.True(t, CheckPassword("12345", hashed))
	assert.False(t, CheckPassword("1234", hashed))
	assert.False(t, CheckPassword("12345", "not-a-hash"))
}
