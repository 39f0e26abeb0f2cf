package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every signature, expiry and claim failure; callers
// never learn which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenPurposeReset marks password-reset tokens. Tokens carrying a purpose
// are not bearer credentials and the auth middleware rejects them.
const TokenPurposeReset = "password_reset"

// TokenClaims is shared by access, refresh and password-reset tokens.
// Refresh and reset tokens carry no email; only reset tokens set Purpose.
type TokenClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the user with the given lifetime.
func GenerateToken(secret string, ttl time.Duration, userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			// unique ID so two tokens minted in the same second still differ
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateResetToken signs a password-reset token. It shares the access
// secret but carries a purpose claim, so it never passes as a bearer token.
func GenerateResetToken(secret string, ttl time.Duration, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:  userID.String(),
		Purpose: TokenPurposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry of a token and returns its
// claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExpiresIn reports the seconds until the token expires, as returned to
// clients alongside a fresh access token.
func (c *TokenClaims) ExpiresIn() int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Unix() - time.Now().Unix()
}
