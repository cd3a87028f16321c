package services

import (
	"testing"

	"nobus-loanhub/internal/core/domain"
	"nobus-loanhub/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_CreateAndValidateAccessToken(t *testing.T) {
	svc := NewTokenService(testConfig())

	token, err := svc.CreateAccessToken(1, "test@example.com", nil)
	require.NoError(t, err)

	claims, err := svc.Validate(token, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, jwt.TypeAccess, claims.TokenType)
}

func TestTokenService_CreateTokenPair(t *testing.T) {
	svc := NewTokenService(testConfig())

	pair, err := svc.CreateTokenPair(7, "pair@example.com", map[string]interface{}{"device": "mobile"})
	require.NoError(t, err)

	accessClaims, err := svc.Validate(pair.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), accessClaims.UserID)
	assert.Equal(t, "mobile", accessClaims.Extra["device"])

	refreshClaims, err := svc.Validate(pair.RefreshToken, jwt.TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), refreshClaims.UserID)
	assert.Equal(t, "mobile", refreshClaims.Extra["device"])
}

func TestTokenService_Validate_WrongTokenType(t *testing.T) {
	svc := NewTokenService(testConfig())

	pair, err := svc.CreateTokenPair(1, "test@example.com", nil)
	require.NoError(t, err)

	// An access token can never stand in for a refresh token
	_, err = svc.Validate(pair.AccessToken, jwt.TypeRefresh)
	assert.ErrorIs(t, err, domain.ErrWrongTokenType)

	// ...and vice versa
	_, err = svc.Validate(pair.RefreshToken, jwt.TypeAccess)
	assert.ErrorIs(t, err, domain.ErrWrongTokenType)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenMins = -1 // already expired at mint time
	svc := NewTokenService(cfg)

	token, err := svc.CreateAccessToken(1, "test@example.com", nil)
	require.NoError(t, err)

	_, err = svc.Validate(token, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewTokenService(testConfig())

	token, err := svc.CreateAccessToken(1, "test@example.com", nil)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "another-secret"
	_, err = NewTokenService(other).Validate(token, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestTokenService_RefreshAccessToken(t *testing.T) {
	svc := NewTokenService(testConfig())

	refreshToken, err := svc.CreateRefreshToken(9, "refresh@example.com", nil)
	require.NoError(t, err)

	newAccess, claims, err := svc.RefreshAccessToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "refresh@example.com", claims.Email)

	accessClaims, err := svc.Validate(newAccess, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(9), accessClaims.UserID)
}

func TestTokenService_RefreshAccessToken_RejectsAccessToken(t *testing.T) {
	svc := NewTokenService(testConfig())

	accessToken, err := svc.CreateAccessToken(1, "test@example.com", nil)
	require.NoError(t, err)

	_, _, err = svc.RefreshAccessToken(accessToken)
	assert.ErrorIs(t, err, domain.ErrWrongTokenType)
}

func TestTokenService_MintedTokensAreAlwaysDistinct(t *testing.T) {
	svc := NewTokenService(testConfig())

	refreshToken, err := svc.CreateRefreshToken(1, "test@example.com", nil)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		access, _, err := svc.RefreshAccessToken(refreshToken)
		require.NoError(t, err)
		assert.False(t, seen[access], "access token literal repeated")
		seen[access] = true
	}
}
