package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	require.Error(t, err)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("secret-a", time.Hour).Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Parse(token)
		assert.Error(t, err)
	}
}
