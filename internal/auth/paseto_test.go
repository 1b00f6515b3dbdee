package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewPasetoCodec_KeyLength(t *testing.T) {
	t.Parallel()

	_, err := NewPasetoCodec([]byte("too-short"))
	require.Error(t, err)

	_, err = NewPasetoCodec(testKey)
	require.NoError(t, err)
}

func TestPasetoCodec_SignAndVerify(t *testing.T) {
	t.Parallel()

	codec, err := NewPasetoCodec(testKey)
	require.NoError(t, err)

	accountID := uuid.New()
	token, err := codec.Sign(accountID, "codec@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, accountID.String(), claims.AccountID)
	require.Equal(t, "codec@example.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestPasetoCodec_ExpiredTokenDistinguishable(t *testing.T) {
	t.Parallel()

	codec, err := NewPasetoCodec(testKey)
	require.NoError(t, err)

	token, err := codec.Sign(uuid.New(), "codec@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestPasetoCodec_WrongKey(t *testing.T) {
	t.Parallel()

	codec, err := NewPasetoCodec(testKey)
	require.NoError(t, err)

	otherCodec, err := NewPasetoCodec([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	token, err := codec.Sign(uuid.New(), "codec@example.com", time.Hour)
	require.NoError(t, err)

	_, err = otherCodec.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoCodec_MalformedToken(t *testing.T) {
	t.Parallel()

	codec, err := NewPasetoCodec(testKey)
	require.NoError(t, err)

	_, err = codec.Verify("v4.local.not-a-real-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
