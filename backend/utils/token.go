package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Verification failures. Handlers log these and answer with a generic
// 401; the reason never reaches the client.
var (
	ErrTokenMissing   = errors.New("missing authorization token")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

type tokenClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the bearer credentials used by the API:
// three dot-separated URL-safe base64 segments (header.payload.signature)
// signed with HMAC-SHA256. There is no revocation store; rotating the
// secret invalidates every outstanding credential.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed credential carrying the user id and an absolute
// expiry. Pure function of the secret and the clock.
func (tc *TokenCodec) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify checks structure, signature and expiry, in that order, and
// returns the embedded user id. The signature covers the exact header and
// payload bytes, so any tampering fails before the payload is trusted.
func (tc *TokenCodec) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrTokenMissing
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		return claims.UserID, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	default:
		return 0, ErrTokenMalformed
	}
}
