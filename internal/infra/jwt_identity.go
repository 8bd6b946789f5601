package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type identityClaims struct {
	IsAdmin     bool `json:"is_admin"`
	IsChercheur bool `json:"is_chercheur"`
	jwt.RegisteredClaims
}

// JWTIdentity adapts HS256 tokens issued by the identity service.
// The subject claim is the evaluator id.
type JWTIdentity struct {
	secret []byte
}

func NewJWTIdentity(secret string) *JWTIdentity {
	return &JWTIdentity{secret: []byte(secret)}
}

func (j *JWTIdentity) Resolve(_ context.Context, token string) (ports.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ports.Identity{}, ErrInvalidToken
	}

	return ports.Identity{
		EvaluatorID: claims.Subject,
		IsAdmin:     claims.IsAdmin,
		IsChercheur: claims.IsChercheur,
	}, nil
}

// Issue signs a token for id. Used by tooling and tests; production tokens come
// from the identity service.
func (j *JWTIdentity) Issue(id ports.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &identityClaims{
		IsAdmin:     id.IsAdmin,
		IsChercheur: id.IsChercheur,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.EvaluatorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
