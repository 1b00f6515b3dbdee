package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the bun model backing the accounts table.
// Verification and reset tokens are nullable: NULL means no token is
// outstanding. A reset token is always stored together with its expiry
// and both columns are cleared together when the token is consumed.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID                  uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email               string     `bun:"email,notnull,unique"`
	PasswordHash        string     `bun:"password_hash,notnull"`
	Verified            bool       `bun:"verified,notnull,default:false"`
	VerificationToken   *string    `bun:"verification_token"`
	ResetToken          *string    `bun:"reset_token"`
	ResetTokenExpiresAt *time.Time `bun:"reset_token_expires_at"`
	CreatedAt           time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt           time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
