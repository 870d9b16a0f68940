package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("emp-1", "dina@example.com", employee.LevelManager)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "dina@example.com", claims["email"])
	assert.Equal(t, "manager", claims["level"])
	assert.Equal(t, "access", claims["type"])
}

func TestDecodeRefreshToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	employeeID, err := svc.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
}

func TestDecodeRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	accessToken, _, err := svc.GenerateAccessToken("emp-1", "dina@example.com", employee.LevelEmployee)
	require.NoError(t, err)

	_, err = svc.DecodeRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestDecodeRefreshToken_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	_, err := svc.DecodeRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "soon", "24h")

	_, _, err := svc.GenerateAccessToken("emp-1", "dina@example.com", employee.LevelEmployee)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, time.Unix(expiresAt, 0), cookie.Expires)
}
