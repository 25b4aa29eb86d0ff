package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour*24)

	access, refresh, err := svc.GenerateTokens("user-1", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken, "Refresh-токен должен быть помечен")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, time.Hour)
	verifier := NewJWTService("secret-b", time.Hour, time.Hour)

	access, _, err := issuer.GenerateTokens("user-1", "employee")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.Error(t, err, "Токен с чужой подписью не должен проходить проверку")
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens("user-1", "employee")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)

	_, err := svc.ValidateToken("не.токен.вовсе")
	assert.Error(t, err)
}
