package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Token types
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims represents the decoded token payload
type Claims struct {
	UserID    uint                   `json:"user_id"`
	Email     string                 `json:"email"`
	TokenType string                 `json:"type"`
	TokenID   string                 `json:"jti"`
	IssuedAt  time.Time              `json:"iat"`
	ExpiresAt time.Time              `json:"exp"`
	Extra     map[string]interface{} `json:"-"`
}

// reservedClaims are managed by the codec; extra claims may not override them
var reservedClaims = map[string]bool{
	"user_id": true,
	"email":   true,
	"type":    true,
	"jti":     true,
	"iat":     true,
	"exp":     true,
}

// SigningMethod resolves the configured algorithm name to a signing method.
// Only the HMAC family is supported; unknown names fall back to HS256.
func SigningMethod(algorithm string) *jwt.SigningMethodHMAC {
	switch algorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// Encode creates a signed token carrying the given claims
func Encode(claims *Claims, secret, algorithm string) (string, error) {
	payload := jwt.MapClaims{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"type":    claims.TokenType,
		"iat":     jwt.NewNumericDate(claims.IssuedAt),
		"exp":     jwt.NewNumericDate(claims.ExpiresAt),
	}
	if claims.TokenID != "" {
		payload["jti"] = claims.TokenID
	}
	for key, value := range claims.Extra {
		if reservedClaims[key] {
			continue
		}
		payload[key] = value
	}

	token := jwt.NewWithClaims(SigningMethod(algorithm), payload)
	return token.SignedString([]byte(secret))
}

// Decode validates a token's signature and expiry and returns its claims.
// The token type claim is NOT checked here - callers that need type
// enforcement go through the token service.
func Decode(tokenString, secret, algorithm string) (*Claims, error) {
	payload := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, payload, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{SigningMethod(algorithm).Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	decoded, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return fromMapClaims(decoded), nil
}

// DecodeUnverified decodes a token WITHOUT checking signature or expiry.
// Useful for inspecting expired tokens or debugging - never use it to
// authenticate a request.
func DecodeUnverified(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	decoded, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return fromMapClaims(decoded), nil
}

// fromMapClaims maps the raw JWT payload into Claims
func fromMapClaims(payload jwt.MapClaims) *Claims {
	claims := &Claims{
		Extra: make(map[string]interface{}),
	}

	for key, value := range payload {
		switch key {
		case "user_id":
			if id, ok := value.(float64); ok {
				claims.UserID = uint(id)
			}
		case "email":
			if email, ok := value.(string); ok {
				claims.Email = email
			}
		case "type":
			if tokenType, ok := value.(string); ok {
				claims.TokenType = tokenType
			}
		case "jti":
			if jti, ok := value.(string); ok {
				claims.TokenID = jti
			}
		case "iat":
			if iat, ok := value.(float64); ok {
				claims.IssuedAt = time.Unix(int64(iat), 0)
			}
		case "exp":
			if exp, ok := value.(float64); ok {
				claims.ExpiresAt = time.Unix(int64(exp), 0)
			}
		default:
			claims.Extra[key] = value
		}
	}

	return claims
}
