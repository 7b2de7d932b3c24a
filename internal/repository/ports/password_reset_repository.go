package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tektai/tektai-backend/internal/domain"
)

type PasswordResetRepository interface {
	// Create stores a new reset record. Callers invalidate any prior
	// record first so at most one unconsumed record exists per user.
	Create(ctx context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) (*domain.PasswordReset, error)
	// FindActiveByUser returns the latest unconsumed record regardless
	// of expiry; expiry is a predicate the ledger evaluates on access.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error)
	InvalidateByUser(ctx context.Context, userID uuid.UUID) error
	// ConsumeAndUpdatePassword flips the consumed flag and writes the
	// user's new password hash in one transaction. The consume step is
	// conditional on the stored token hash still being unconsumed;
	// sql.ErrNoRows is returned when another caller won the race.
	ConsumeAndUpdatePassword(ctx context.Context, resetID int64, tokenHash []byte, userID uuid.UUID, newPasswordHash string) error
}
