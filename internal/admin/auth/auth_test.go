package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "seventytwo/pkg/domain-errors"
)

func newAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	return New("admin", hash, "signing-key", ttl)
}

func TestLoginAndValidateRoundTrip(t *testing.T) {
	a := newAuthenticator(t, time.Hour)

	token, err := a.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAuthenticator(t, time.Hour)

	_, err := a.Login("admin", "wrong")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = a.Login("root", "s3cret")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	a := newAuthenticator(t, -time.Minute)

	token, err := a.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, dErrors.MessageOf(err), "expired")
}

func TestValidateRejectsForeignToken(t *testing.T) {
	a := newAuthenticator(t, time.Hour)
	other := New("admin", "", "different-key", time.Hour)

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	other.passwordHash = []byte(hash)

	token, err := other.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := newAuthenticator(t, time.Hour)
	_, err := a.ValidateToken("not.a.jwt")
	require.Error(t, err)
}
