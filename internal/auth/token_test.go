package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken_Entropy(t *testing.T) {
	t.Parallel()

	token, err := GenerateRandomToken()
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, decoded, 32)
}

func TestGenerateRandomToken_NoCollisions(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := GenerateRandomToken()
		require.NoError(t, err)
		require.False(t, seen[token], "generated duplicate token")
		seen[token] = true
	}
}
