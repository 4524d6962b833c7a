package utils // package utils provides helpers for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed token or expiry. Callers must not distinguish
// between these cases in responses.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set carried by both access and refresh tokens. The
// subject holds the UserUUID; username and role ride along so protected
// handlers never need a user lookup just to authorize.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued access/refresh token pair. The refresh
// token is delivered only via an http-only cookie and additionally persisted
// on the user row so rotation can invalidate prior tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	RefreshExp   time.Time
}

// NewToken builds and signs an HS256 JWT for a user. Access and refresh
// tokens share this constructor and differ only in secret and TTL. Every
// token carries a unique jti: iat/exp only have second granularity, and
// refresh rotation compares tokens by equality, so two tokens minted in
// the same second must still differ.
func NewToken(secret, userUUID, username, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssuePair signs a new access + refresh token pair with their distinct
// secrets. The caller is responsible for persisting the refresh token on the
// user record (one active token per user).
func IssuePair(secret, refreshSecret, userUUID, username, role string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	access, err := NewToken(secret, userUUID, username, role, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := NewToken(refreshSecret, userUUID, username, role, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		RefreshExp:   time.Now().UTC().Add(refreshTTL),
	}, nil
}

// VerifyToken parses and validates a signed token against the given secret.
// Only HMAC signatures are accepted; anything else fails with
// ErrInvalidToken. Note that a cryptographically valid refresh token is not
// necessarily current: currency against the stored token is enforced at the
// user store level by the caller.
func VerifyToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
