package infra

import (
	"context"
	"testing"
	"time"

	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test"

func TestJWTIdentity_RoundTrip(t *testing.T) {
	j := NewJWTIdentity(testSecret)
	want := ports.Identity{EvaluatorID: "u42", IsChercheur: true}

	token, err := j.Issue(want, time.Hour)
	require.NoError(t, err)

	got, err := j.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJWTIdentity_Rejects(t *testing.T) {
	j := NewJWTIdentity(testSecret)

	otherSecret, err := NewJWTIdentity("another-secret-of-length").Issue(ports.Identity{EvaluatorID: "u1"}, time.Hour)
	require.NoError(t, err)

	expired, err := j.Issue(ports.Identity{EvaluatorID: "u1"}, -time.Minute)
	require.NoError(t, err)

	noSubject, err := j.Issue(ports.Identity{IsAdmin: true}, time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": otherSecret,
		"expired":      expired,
		"no subject":   noSubject,
		"alg none":     unsigned,
		"garbage":      "not-a-token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := j.Resolve(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
