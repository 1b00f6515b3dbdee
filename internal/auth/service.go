package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/redmonkez12/account-service/internal/account"
	"github.com/redmonkez12/account-service/internal/logging"
)

// resetTokenTTL is how long a password reset token stays valid
const resetTokenTTL = 1 * time.Hour

// LoginResult carries the signed bearer token returned on successful login
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Service handles authentication business logic
type Service struct {
	store         AccountStore
	notifier      Notifier
	codec         TokenCodec
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	store AccountStore,
	notifier Notifier,
	codec TokenCodec,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	return &Service{
		store:         store,
		notifier:      notifier,
		codec:         codec,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new unverified account and sends a verification email.
// Email delivery is fire-and-forget: a failure is logged and never fails the
// registration.
func (s *Service) Register(ctx context.Context, email, password string) (*account.Account, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := GenerateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	newAccount, err := s.store.Create(ctx, email, passwordHash, verificationToken)
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// Send verification email in a goroutine (non-blocking).
	// Fresh context so the email is not cancelled with the request.
	go func() {
		emailCtx := context.Background()
		if err := s.notifier.SendVerificationEmail(emailCtx, email, verificationToken); err != nil {
			s.logger.Warn("failed to send verification email", "email", email, "error", err)
		}
	}()

	return newAccount, nil
}

// Login authenticates an account and returns a signed bearer token.
// Unknown email and wrong password produce the identical
// ErrInvalidCredentials so callers cannot probe which accounts exist.
// Unverified accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !existing.Verified {
		return nil, ErrEmailNotVerified
	}

	token, err := s.codec.Sign(existing.ID, existing.Email, s.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenDuration.Seconds()),
	}, nil
}

// VerifyEmail consumes a verification token, flipping the account to
// verified. The store clears the token in the same conditional update, so a
// second request with the same token observes ErrInvalidOrExpiredToken.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	if _, err := s.store.FindByVerificationToken(ctx, token); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to get account by verification token: %w", err)
	}

	if _, err := s.store.ConsumeVerificationToken(ctx, token); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Token was consumed between the lookup and the update
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to consume verification token: %w", err)
	}

	return nil
}

// ForgotPassword issues a reset token valid for one hour and emails a reset
// link. A new token overwrites any previous one. The reset email is
// fire-and-forget like the verification email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	token, err := GenerateRandomToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.store.SetResetToken(ctx, existing.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go func() {
		emailCtx := context.Background()
		if err := s.notifier.SendPasswordResetEmail(emailCtx, email, token); err != nil {
			s.logger.Warn("failed to send password reset email", "email", email, "error", err)
		}
	}()

	return nil
}

// ResetPassword consumes a reset token and overwrites the password. The
// expiry must be strictly in the future. The store clears the token and its
// expiry together in the same conditional update that writes the new hash,
// so of two concurrent calls with the same token only one can succeed.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrTokenRequired
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	existing, err := s.store.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to get account by reset token: %w", err)
	}

	if existing.ResetTokenExpiresAt == nil || !existing.ResetTokenExpiresAt.After(time.Now()) {
		return ErrInvalidOrExpiredToken
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.ConsumePasswordReset(ctx, token, passwordHash); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Token was consumed or expired between the lookup and the update
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	return nil
}

// ValidateToken verifies the Authorization header of a protected request
// and returns the bearer token's claims
func (s *Service) ValidateToken(ctx context.Context, authorizationHeader string) (*TokenClaims, error) {
	if authorizationHeader == "" {
		return nil, ErrAuthorizationMissing
	}

	const scheme = "Bearer "
	if !strings.HasPrefix(authorizationHeader, scheme) {
		return nil, ErrInvalidToken
	}

	claims, err := s.codec.Verify(strings.TrimPrefix(authorizationHeader, scheme))
	if err != nil {
		// Codec already maps to ErrTokenExpired / ErrInvalidToken
		return nil, err
	}

	return claims, nil
}

// ResendVerificationEmail sends a new verification email to the account.
// Always returns nil to prevent email enumeration attacks.
func (s *Service) ResendVerificationEmail(ctx context.Context, email string) error {
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		// Don't reveal if the account exists
		if errors.Is(err, account.ErrNotFound) {
			return nil
		}
		s.logger.Warn("failed to get account for resend verification", "error", err)
		return nil
	}

	if existing.Verified {
		// Don't reveal that the email is already verified
		return nil
	}

	token, err := GenerateRandomToken()
	if err != nil {
		s.logger.Warn("failed to generate verification token", "error", err)
		return nil
	}

	if err := s.store.UpdateVerificationToken(ctx, existing.ID, token); err != nil {
		s.logger.Warn("failed to update verification token", "error", err)
		return nil
	}

	go func() {
		emailCtx := context.Background()
		if err := s.notifier.SendVerificationEmail(emailCtx, email, token); err != nil {
			s.logger.Warn("failed to resend verification email", "email", email, "error", err)
		}
	}()

	return nil
}
