package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"personal-site/internal/domain/entity"
)

// TokenTTL is the lifetime of issued session tokens.
const TokenTTL = 1 * time.Hour

// IssueToken signs a session token for the identity. The token carries
// only who the caller is; the role is resolved per request so that a
// profile change takes effect without re-issuing tokens.
func IssueToken(secret []byte, ident *entity.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.ID,
		"email": ident.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// ParseBearer validates an Authorization header value and returns the
// identity the token was issued for.
func ParseBearer(authz string, secret []byte) (*entity.Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return nil, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid sub claim")
	}
	email, _ := claims["email"].(string)

	return &entity.Identity{ID: sub, Email: email}, nil
}
