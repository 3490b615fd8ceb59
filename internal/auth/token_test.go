package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/product-store/internal/domain"
)

func TestSignAndVerifyValid(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", func() time.Time { return now })

	token, expiresAt, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, now.Add(5*time.Minute), expiresAt)

	outcome := tm.Verify(token)
	require.Equal(t, StatusValid, outcome.Status)
	require.NotNil(t, outcome.Claims)
	assert.Equal(t, "u1", outcome.Claims.SubjectID)
	assert.Equal(t, "u1@example.com", outcome.Claims.Email)
	assert.Equal(t, domain.RoleUser, outcome.Claims.Role)
}

func TestVerifyExpiredKeepsClaims(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", func() time.Time { return now })

	token, _, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, 5*time.Second)
	require.NoError(t, err)

	now = now.Add(6 * time.Second)

	outcome := tm.Verify(token)
	require.Equal(t, StatusExpired, outcome.Status)
	require.NotNil(t, outcome.Claims)
	assert.Equal(t, "u1", outcome.Claims.SubjectID)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", func() time.Time { return now })

	token, _, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, 5*time.Second)
	require.NoError(t, err)

	now = now.Add(4 * time.Second)

	outcome := tm.Verify(token)
	assert.Equal(t, StatusValid, outcome.Status)
}

func TestVerifyTamperedSignatureIsInvalid(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", func() time.Time { return now })

	token, _, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, 5*time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	outcome := tm.Verify(tampered)
	assert.Equal(t, StatusInvalid, outcome.Status)
	assert.Nil(t, outcome.Claims)
}

func TestVerifyTamperedExpiredTokenIsInvalidNotExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", func() time.Time { return now })

	token, _, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, time.Second)
	require.NoError(t, err)

	now = now.Add(time.Hour)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	outcome := tm.Verify(tampered)
	assert.Equal(t, StatusInvalid, outcome.Status)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", nil)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		outcome := tm.Verify(token)
		assert.Equal(t, StatusInvalid, outcome.Status, "token %q", token)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := NewTokenManager("secret-a", func() time.Time { return now })
	verifier := NewTokenManager("secret-b", func() time.Time { return now })

	token, _, err := signer.Sign("u1", "u1@example.com", domain.RoleUser, 5*time.Minute)
	require.NoError(t, err)

	outcome := verifier.Verify(token)
	assert.Equal(t, StatusInvalid, outcome.Status)
}

func TestSignWithoutSecretFails(t *testing.T) {
	tm := NewTokenManager("", nil)

	_, _, err := tm.Sign("u1", "u1@example.com", domain.RoleUser, time.Minute)
	assert.ErrorIs(t, err, ErrSecretMissing)
}
