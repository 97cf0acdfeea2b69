// README: JWT issuing and verification. Session issuance lives in a
// separate auth service; this core only validates bearer tokens and reads
// the {user_id, role} claims.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token holds the verified claims used by downstream middleware.
type Token struct {
	UserID string
	Role   string
}

// TokenVerifier verifies a raw bearer token string and returns token data.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*Token, error)
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a TokenVerifier for HS256 tokens signed with the
// shared secret.
func NewJWTVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) VerifyToken(_ context.Context, raw string) (*Token, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	tok := &Token{}
	if v, ok := claims["user_id"].(string); ok {
		tok.UserID = v
	}
	if v, ok := claims["role"].(string); ok {
		tok.Role = v
	}
	if tok.UserID == "" {
		return nil, errors.New("token missing user_id claim")
	}
	return tok, nil
}

// GenerateToken signs a token for the given user. Used by tooling and
// tests; the production issuer is the external auth service.
func GenerateToken(secret, userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
