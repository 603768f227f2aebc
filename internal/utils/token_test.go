package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodo2020/market-maadaoui-sells-sub000/config"
)

func setTestConfig(secret string) {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			JWTSecret:          secret,
			JWTExpirationHours: 1,
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig("test-secret")

	token, err := GenerateToken(7, "CSH003", "cashier")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "CSH003", claims.EmployeeID)
	assert.Equal(t, "cashier", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	setTestConfig("secret-a")
	token, err := GenerateToken(7, "CSH003", "cashier")
	require.NoError(t, err)

	setTestConfig("secret-b")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	setTestConfig("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
