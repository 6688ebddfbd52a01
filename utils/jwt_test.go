package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tok, err := GenerateToken(42, "RESTAURANT_OWNER", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "RESTAURANT_OWNER", claims.Role)

	_, err = ParseToken(tok, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := GenerateToken(1, "CLIENT", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, "secret")
	assert.Error(t, err)
}
