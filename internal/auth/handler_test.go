package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/account-service/internal/logging"
)

func newTestHandler(t *testing.T) (*Handler, *Service, *memStore) {
	t.Helper()
	svc, store, _ := newTestService(t)
	return NewHandler(svc, logging.NewLogger(true)), svc, store
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandler_Register(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", `{"email":"h@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "h@example.com", resp.Account.Email)
	require.False(t, resp.Account.IsVerified)

	// Duplicate registration conflicts
	rec = postJSON(t, h.Register, "/auth/register", `{"email":"h@example.com","password":"password123"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "DUPLICATE_ACCOUNT")
}

func TestHandler_RegisterResponseNeverLeaksSecrets(t *testing.T) {
	h, _, store := newTestHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", `{"email":"leak@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	a, err := store.FindByEmail(context.Background(), "leak@example.com")
	require.NoError(t, err)

	body := rec.Body.String()
	require.NotContains(t, body, "password123")
	require.NotContains(t, body, a.PasswordHash)
	require.NotContains(t, body, *a.VerificationToken)
}

func TestHandler_RegisterInvalidBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_REQUEST_BODY")
}

func TestHandler_Login(t *testing.T) {
	h, svc, store := newTestHandler(t)
	registerVerified(t, svc, store, "hl@example.com", "password123")

	rec := postJSON(t, h.Login, "/auth/login", `{"email":"hl@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result LoginResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.NotEmpty(t, result.Token)

	rec = postJSON(t, h.Login, "/auth/login", `{"email":"hl@example.com","password":"wrongpassword"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestHandler_LoginUnverified(t *testing.T) {
	h, svc, _ := newTestHandler(t)

	_, err := svc.Register(context.Background(), "hu@example.com", "password123")
	require.NoError(t, err)

	rec := postJSON(t, h.Login, "/auth/login", `{"email":"hu@example.com","password":"password123"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "EMAIL_NOT_VERIFIED")
}

func TestHandler_VerifyEmail(t *testing.T) {
	h, svc, store := newTestHandler(t)

	a, err := svc.Register(context.Background(), "hv@example.com", "password123")
	require.NoError(t, err)
	token := *store.get(a.ID).VerificationToken

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.VerifyEmail(rec, req)
		return rec
	}

	rec := get("/auth/verify-email")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "TOKEN_REQUIRED")

	rec = get("/auth/verify-email?token=" + token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get("/auth/verify-email?token=" + token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_OR_EXPIRED_TOKEN")
}

func TestHandler_ForgotAndResetPassword(t *testing.T) {
	h, svc, store := newTestHandler(t)
	a := registerVerified(t, svc, store, "hr@example.com", "oldpassword1")

	rec := postJSON(t, h.ForgotPassword, "/auth/forgot-password", `{"email":"ghost@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "ACCOUNT_NOT_FOUND")

	rec = postJSON(t, h.ForgotPassword, "/auth/forgot-password", `{"email":"hr@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	token := *store.get(a.ID).ResetToken

	rec = postJSON(t, h.ResetPassword, "/auth/reset-password", `{"token":"`+token+`","new_password":"newpassword1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Consumed token is rejected on replay
	rec = postJSON(t, h.ResetPassword, "/auth/reset-password", `{"token":"`+token+`","new_password":"another123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_OR_EXPIRED_TOKEN")

	_, err := svc.Login(context.Background(), "hr@example.com", "newpassword1")
	require.NoError(t, err)
}

func TestHandler_ResendVerificationAlwaysSucceeds(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.ResendVerificationEmail, "/auth/resend-verification", `{"email":"anyone@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}
