package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/account-service/internal/account"
)

// AccountStore defines the persistence operations the auth service needs.
// The Consume* methods must be atomic find-and-clear: when two concurrent
// requests present the same token, exactly one consumption may succeed.
type AccountStore interface {
	Create(ctx context.Context, email, passwordHash, verificationToken string) (*account.Account, error)
	FindByEmail(ctx context.Context, email string) (*account.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*account.Account, error)
	FindByResetToken(ctx context.Context, token string) (*account.Account, error)
	ConsumeVerificationToken(ctx context.Context, token string) (*account.Account, error)
	SetResetToken(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, token, passwordHash string) (*account.Account, error)
	UpdateVerificationToken(ctx context.Context, accountID uuid.UUID, token string) error
}

// Notifier defines the interface for outbound email delivery. Implementations
// are called from goroutines; delivery failures are logged, never propagated.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, toEmail, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, token string) error
}

// TokenCodec defines the interface for bearer token signing and verification.
// Verify must return ErrTokenExpired for expired tokens and ErrInvalidToken
// for anything else that fails.
type TokenCodec interface {
	Sign(accountID uuid.UUID, email string, duration time.Duration) (string, error)
	Verify(tokenStr string) (*TokenClaims, error)
}
