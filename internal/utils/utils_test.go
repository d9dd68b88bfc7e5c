package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hashed)

	assert.True(t, CheckPassword(hashed, "hunter22"))
	assert.False(t, CheckPassword(hashed, "hunter23"))
	assert.False(t, CheckPassword("not-a-hash", "hunter22"))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "client", 60)
	require.NoError(t, err)

	claims, err := ParseJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "client", claims.Role)
}

func TestJWTRejections(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := SignJWT("secret", "user-123", "client", 60)
		require.NoError(t, err)

		_, err = ParseJWT("other-secret", token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := SignJWT("secret", "user-123", "client", -1)
		require.NoError(t, err)

		_, err = ParseJWT("secret", token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJWT("secret", "garbage.token.here")
		assert.Error(t, err)
	})
}
