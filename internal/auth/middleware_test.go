package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	svc, store, _ := newTestService(t)
	registerVerified(t, svc, store, "mw@example.com", "password123")

	result, err := svc.Login(context.Background(), "mw@example.com", "password123")
	require.NoError(t, err)

	var gotEmail string
	protected := NewMiddleware(svc).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = GetAccountEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	do := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		rec := do("Bearer " + result.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "mw@example.com", gotEmail)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := do("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "MISSING_AUTHORIZATION")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := do("Basic xyz")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token", func(t *testing.T) {
		codec, err := NewPasetoCodec(testKey)
		require.NoError(t, err)
		expired, err := codec.Sign(uuid.New(), "mw@example.com", -time.Minute)
		require.NoError(t, err)

		rec := do("Bearer " + expired)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
	})
}
