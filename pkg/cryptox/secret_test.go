package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("issuer-api-key-123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifySecret("issuer-api-key-123", hash))
	require.ErrorIs(t, VerifySecret("wrong-key", hash), ErrSecretMismatch)
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	h1, err := HashSecret("same-secret")
	require.NoError(t, err)
	h2, err := HashSecret("same-secret")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "salts must differ per hash")
	require.NoError(t, VerifySecret("same-secret", h1))
	require.NoError(t, VerifySecret("same-secret", h2))
}

func TestVerifySecret_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plaintext-value"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySecret("anything", tt.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrSecretMismatch)
		})
	}
}

func TestIsPHCHash(t *testing.T) {
	hash, err := HashSecret("k")
	require.NoError(t, err)

	require.True(t, IsPHCHash(hash))
	require.False(t, IsPHCHash("plain-api-key"))
	require.False(t, IsPHCHash(""))
}
