package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset holds the hash of a single-use reset secret. The
// plaintext secret is only ever handed to the email channel at
// generation time and is not recoverable from this record.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TokenHash []byte    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Consumed  bool      `db:"consumed" json:"consumed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
