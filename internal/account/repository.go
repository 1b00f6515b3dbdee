package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/account-service/internal/database"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles account persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new unverified account with a pending verification token
func (r *Repository) Create(ctx context.Context, email, passwordHash, verificationToken string) (*Account, error) {
	dbAccount := &database.Account{
		Email:             email,
		PasswordHash:      passwordHash,
		VerificationToken: &verificationToken,
		Verified:          false,
	}

	_, err := r.db.NewInsert().
		Model(dbAccount).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// FindByEmail retrieves an account by email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	dbAccount := new(database.Account)
	err := r.db.NewSelect().
		Model(dbAccount).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// FindByVerificationToken retrieves an unverified account by its pending token
func (r *Repository) FindByVerificationToken(ctx context.Context, token string) (*Account, error) {
	dbAccount := new(database.Account)
	err := r.db.NewSelect().
		Model(dbAccount).
		Where("verification_token = ?", token).
		Where("verified = ?", false).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by verification token: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// FindByResetToken retrieves an account by its outstanding reset token
func (r *Repository) FindByResetToken(ctx context.Context, token string) (*Account, error) {
	dbAccount := new(database.Account)
	err := r.db.NewSelect().
		Model(dbAccount).
		Where("reset_token = ?", token).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by reset token: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// ConsumeVerificationToken marks the matching account verified and clears the
// token in a single conditional update. With two concurrent consumers only one
// update matches a row; the other gets ErrNotFound.
func (r *Repository) ConsumeVerificationToken(ctx context.Context, token string) (*Account, error) {
	dbAccount := new(database.Account)
	result, err := r.db.NewUpdate().
		Model(dbAccount).
		Set("verified = ?", true).
		Set("verification_token = NULL").
		Set("updated_at = NOW()").
		Where("verification_token = ?", token).
		Where("verified = ?", false).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to consume verification token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBAccountToModel(dbAccount), nil
}

// SetResetToken stores a new reset token and its expiry, replacing any
// previous pair
func (r *Repository) SetResetToken(ctx context.Context, accountID uuid.UUID, token string, expiresAt time.Time) error {
	result, err := r.db.NewUpdate().
		Model((*database.Account)(nil)).
		Set("reset_token = ?", token).
		Set("reset_token_expires_at = ?", expiresAt).
		Set("updated_at = NOW()").
		Where("id = ?", accountID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ConsumePasswordReset overwrites the password hash and clears the reset token
// and its expiry together, conditional on the token still being present and
// unexpired. Only one of two concurrent consumers can match the row.
func (r *Repository) ConsumePasswordReset(ctx context.Context, token, passwordHash string) (*Account, error) {
	dbAccount := new(database.Account)
	result, err := r.db.NewUpdate().
		Model(dbAccount).
		Set("password_hash = ?", passwordHash).
		Set("reset_token = NULL").
		Set("reset_token_expires_at = NULL").
		Set("updated_at = NOW()").
		Where("reset_token = ?", token).
		Where("reset_token_expires_at > NOW()").
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBAccountToModel(dbAccount), nil
}

// UpdateVerificationToken regenerates the verification token for resend
func (r *Repository) UpdateVerificationToken(ctx context.Context, accountID uuid.UUID, token string) error {
	result, err := r.db.NewUpdate().
		Model((*database.Account)(nil)).
		Set("verification_token = ?", token).
		Set("updated_at = NOW()").
		Where("id = ?", accountID).
		Where("verified = ?", false).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update verification token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBAccountToModel converts database model to domain model
func mapDBAccountToModel(dba *database.Account) *Account {
	return &Account{
		ID:                  dba.ID,
		Email:               dba.Email,
		PasswordHash:        dba.PasswordHash,
		Verified:            dba.Verified,
		VerificationToken:   dba.VerificationToken,
		ResetToken:          dba.ResetToken,
		ResetTokenExpiresAt: dba.ResetTokenExpiresAt,
		CreatedAt:           dba.CreatedAt,
		UpdatedAt:           dba.UpdatedAt,
	}
}
