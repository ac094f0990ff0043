package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test_secret", 365*24*time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateJWT("ann@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Greater(t, claims.ExpiresAt, time.Now().Add(364*24*time.Hour).Unix())
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer, _ := NewTokenService("issuer_secret", time.Hour)
	verifier, _ := NewTokenService("other_secret", time.Hour)

	token, err := issuer.GenerateJWT("ann@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("test_secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateJWT("ann@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService("test_secret", time.Minute)
	_, err := svc.ValidateJWT("clearly-not-a-jwt")
	assert.Error(t, err)
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	svc, err := NewTokenService("", time.Minute)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
