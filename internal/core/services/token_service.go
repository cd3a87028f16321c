package services

import (
	"time"

	"nobus-loanhub/internal/config"
	"nobus-loanhub/internal/core/domain"
	"nobus-loanhub/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenService mints and validates access/refresh token pairs.
// The signing secret, algorithm and lifetimes come from the injected
// config - changing them affects newly issued tokens only, since every
// token carries its own expiry.
type TokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// CreateAccessToken creates a short-lived access token
func (s *TokenService) CreateAccessToken(userID uint, email string, extraClaims map[string]interface{}) (string, error) {
	lifetime := time.Duration(s.cfg.JWT.AccessTokenMins) * time.Minute
	return s.create(userID, email, jwt.TypeAccess, lifetime, extraClaims)
}

// CreateRefreshToken creates a long-lived refresh token
func (s *TokenService) CreateRefreshToken(userID uint, email string, extraClaims map[string]interface{}) (string, error) {
	lifetime := time.Duration(s.cfg.JWT.RefreshTokenDays) * 24 * time.Hour
	return s.create(userID, email, jwt.TypeRefresh, lifetime, extraClaims)
}

// CreateTokenPair creates both access and refresh tokens carrying the
// same subject and extra claims
func (s *TokenService) CreateTokenPair(userID uint, email string, extraClaims map[string]interface{}) (*domain.TokenPair, error) {
	accessToken, err := s.CreateAccessToken(userID, email, extraClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.CreateRefreshToken(userID, email, extraClaims)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Validate decodes a token and enforces the expected token type.
// A structurally valid, unexpired token of the wrong type fails with
// ErrWrongTokenType - a refresh token can never stand in for an access
// token or vice versa.
func (s *TokenService) Validate(tokenString, expectedType string) (*jwt.Claims, error) {
	claims, err := jwt.Decode(tokenString, s.cfg.JWT.Secret, s.cfg.JWT.Algorithm)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, domain.ErrWrongTokenType
	}

	return claims, nil
}

// RefreshAccessToken validates a refresh token and mints a brand-new
// access token for the same subject. The refresh token is NOT rotated:
// callers resubmit the same refresh token until it expires.
func (s *TokenService) RefreshAccessToken(refreshToken string) (string, *jwt.Claims, error) {
	claims, err := s.Validate(refreshToken, jwt.TypeRefresh)
	if err != nil {
		return "", nil, err
	}

	newAccessToken, err := s.CreateAccessToken(claims.UserID, claims.Email, nil)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, claims, nil
}

// create builds and signs a token of the given type
func (s *TokenService) create(userID uint, email, tokenType string, lifetime time.Duration, extraClaims map[string]interface{}) (string, error) {
	now := time.Now()
	claims := &jwt.Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		TokenID:   uuid.New().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(lifetime),
		Extra:     extraClaims,
	}

	return jwt.Encode(claims, s.cfg.JWT.Secret, s.cfg.JWT.Algorithm)
}
