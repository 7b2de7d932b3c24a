package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tektai/tektai-backend/internal/domain"
)

type PasswordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	const query = `
        INSERT INTO password_reset (user_id, token_hash, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, user_id, token_hash, expires_at, consumed, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, tokenHash, expiresAt)
	var reset domain.PasswordReset
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error) {
	const query = `
        SELECT id, user_id, token_hash, expires_at, consumed, created_at
        FROM password_reset
        WHERE user_id = $1 AND consumed = FALSE
        ORDER BY created_at DESC
        LIMIT 1
    `
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) InvalidateByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE password_reset
        SET consumed = TRUE
        WHERE user_id = $1 AND consumed = FALSE
    `
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// ConsumeAndUpdatePassword applies the consume flag and the new
// password hash as one transaction. The consume UPDATE is conditional
// on the record still holding the expected token hash unconsumed, so
// of two concurrent callers exactly one sees a row and the other gets
// sql.ErrNoRows.
func (r *PasswordResetRepository) ConsumeAndUpdatePassword(ctx context.Context, resetID int64, tokenHash []byte, userID uuid.UUID, newPasswordHash string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset consume: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const consume = `
        UPDATE password_reset
        SET consumed = TRUE
        WHERE id = $1 AND token_hash = $2 AND consumed = FALSE
    `
	res, err := tx.ExecContext(ctx, consume, resetID, tokenHash)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	const updatePassword = `
        UPDATE user_account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	if _, err := tx.ExecContext(ctx, updatePassword, userID, newPasswordHash); err != nil {
		return err
	}

	return tx.Commit()
}
