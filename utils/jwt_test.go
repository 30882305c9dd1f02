package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportflow/config"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	config.InitConfig()
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWT(42, "abebe@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "abebe@example.com", claims.Email)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	config.InitConfig()
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWT(42, "abebe@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	config.InitConfig()
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWT(42, "abebe@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "a-different-secret"
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	config.InitConfig()
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
