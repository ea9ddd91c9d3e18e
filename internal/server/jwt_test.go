package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiresense/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: expirationHours})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("career-portal")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "career-portal", claims.GetClient())
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_GenerateToken_EmptyClient(t *testing.T) {
	_, err := setupTestJWTService(t, 1).GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 1)
	now := time.Now()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{
			name: "wrong secret",
			token: sign(jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "x", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
				jwt.SigningMethodHS256, []byte("another-secret")),
		},
		{
			name: "expired",
			token: sign(jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "x", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))},
				jwt.SigningMethodHS256, []byte(testSecret)),
		},
		{
			name: "wrong issuer",
			token: sign(jwt.RegisteredClaims{Issuer: "someone-else", Subject: "x", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
				jwt.SigningMethodHS256, []byte(testSecret)),
		},
		{
			name: "no subject",
			token: sign(jwt.RegisteredClaims{Issuer: TokenIssuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
				jwt.SigningMethodHS256, []byte(testSecret)),
		},
		{
			name:  "none algorithm",
			token: sign(jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "x"}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	claims, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.GetClient())

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
