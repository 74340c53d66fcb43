package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when a token string cannot be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrInvalidSignature is returned when the payload parses but the
	// signature does not verify against the configured secret.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrTokenExpired is returned for tokens past their expiry claim.
	// Only possible when the codec was built with a non-zero TTL.
	ErrTokenExpired = errors.New("token expired")
)

// TokenCodec signs and verifies the auth tokens handed to API clients.
// Tokens are HS256 JWTs carrying the user id. A zero ttl issues tokens
// with no expiry claim; rotating the secret invalidates everything
// previously issued.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TokenClaims is the payload embedded in a signed token.
type TokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Encode signs a token for the given user id.
func (c *TokenCodec) Encode(userID int64) (string, error) {
	claims := &TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if c.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(c.ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature before trusting the payload. A token that
// parses and verifies but carries no user id is reported as malformed so
// callers never see half-trusted claims.
func (c *TokenCodec) Decode(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.UserID == 0 {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
