// README: Bearer-token verification; HMAC JWT implementation and test seam.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller identity consumed by the HTTP middleware.
type Identity struct {
	UserID     string
	CustomerID string
	Role       string
}

// Claims is the JWT payload carried by tripdesk bearer tokens.
type Claims struct {
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`
	Role       string `json:"role"` // "customer" or "admin"
	jwt.RegisteredClaims
}

// TokenVerifier resolves a raw bearer token into a caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a TokenVerifier over HMAC-SHA256 signed tokens.
func NewJWTVerifier(secret string) (TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &jwtVerifier{secret: []byte(secret)}, nil
}

func (v *jwtVerifier) Verify(_ context.Context, raw string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &Identity{
		UserID:     claims.UserID,
		CustomerID: claims.CustomerID,
		Role:       claims.Role,
	}, nil
}

// GenerateToken signs a token for the given identity. Used by tests and the
// operational token-minting path.
func GenerateToken(secret string, id Identity, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:     id.UserID,
		CustomerID: id.CustomerID,
		Role:       id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
