package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrExpiredToken   = errors.New("token expired")
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	}
	return "", false
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 session tokens. It holds no mutable
// state, so a single instance is shared across requests.
type Codec struct {
	Secret []byte
	TTL    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Codec{Secret: secret, TTL: ttl}
}

func (c *Codec) Issue(username string, role Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL)),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.Secret)
}

func (c *Codec) Verify(raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrBadSignature
		}
		return c.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformedToken
		}
	}
	if !tkn.Valid {
		return nil, ErrMalformedToken
	}
	if _, ok := ParseRole(string(claims.Role)); !ok {
		return nil, ErrMalformedToken
	}
	return &claims, nil
}

// ExpiryOf reads the exp claim without verifying the signature. Used by
// logout, which must record an expiry for tokens it never trusts.
func (c *Codec) ExpiryOf(raw string) (time.Time, bool) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
