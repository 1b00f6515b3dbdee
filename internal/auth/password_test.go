package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesArgon2idHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	require.NotContains(t, hash, "password123")
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword(first, "password123"))
	require.True(t, VerifyPassword(second, "password123"))
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"matching password", hash, "correct horse battery staple", true},
		{"wrong password", hash, "wrong password", false},
		{"empty password", hash, "", false},
		{"empty hash", "", "correct horse battery staple", false},
		{"malformed hash", "not-a-hash", "correct horse battery staple", false},
		{"truncated hash", "$argon2id$v=19$m=65536,t=3,p=4$abc", "correct horse battery staple", false},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=3,p=4$!!!$!!!", "correct horse battery staple", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VerifyPassword(tt.hash, tt.password))
		})
	}
}
