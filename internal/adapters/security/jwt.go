package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/courseworks/peer-review-service/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier validates HS256 bearer tokens issued by the course platform's
// auth service. Verification only; this service never signs tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(raw string) (ports.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return ports.AuthClaims{}, err
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return ports.AuthClaims{}, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return ports.AuthClaims{}, errors.New("token missing subject")
	}
	return ports.AuthClaims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}
