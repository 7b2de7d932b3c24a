package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tektai/tektai-backend/internal/repository/ports"
	"github.com/tektai/tektai-backend/internal/util"
)

const (
	resetSecretBytes = 32
	DefaultResetTTL  = time.Hour
)

// ResetService owns the password-reset ledger: per user the stored
// record moves None -> Pending -> Consumed, with expiry evaluated on
// every access. At most one unconsumed record exists per user.
type ResetService struct {
	resets ports.PasswordResetRepository
	ttl    time.Duration

	now func() time.Time
}

func NewResetService(resets ports.PasswordResetRepository, ttl time.Duration) *ResetService {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &ResetService{resets: resets, ttl: ttl, now: time.Now}
}

// Generate mints a fresh random secret for the user, discarding any
// prior unconsumed record. Only the hash is stored; the returned
// plaintext secret exists solely for the email channel and cannot be
// retrieved again.
func (s *ResetService) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	secret, err := util.NewResetSecret(resetSecretBytes)
	if err != nil {
		return "", fmt.Errorf("generate reset secret: %w", err)
	}

	if err := s.resets.InvalidateByUser(ctx, userID); err != nil {
		return "", fmt.Errorf("invalidate prior reset: %w", err)
	}
	if _, err := s.resets.Create(ctx, userID, util.HashResetSecret(secret), s.now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("store reset record: %w", err)
	}
	return secret, nil
}

// Consume validates the presented secret and, on success, marks the
// record consumed and writes the new password hash as one atomic unit.
// Of two concurrent callers presenting the same valid secret exactly
// one succeeds; the other observes ErrResetNotFound.
func (s *ResetService) Consume(ctx context.Context, userID uuid.UUID, secret, newPasswordHash string) error {
	reset, err := s.resets.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetNotFound
		}
		return fmt.Errorf("load reset record: %w", err)
	}
	if reset.Expired(s.now()) {
		return ErrResetExpired
	}

	presented := util.HashResetSecret(secret)
	if subtle.ConstantTimeCompare(presented, reset.TokenHash) != 1 {
		return ErrResetMismatch
	}

	err = s.resets.ConsumeAndUpdatePassword(ctx, reset.ID, presented, userID, newPasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A concurrent consumer won the compare-and-swap.
			return ErrResetNotFound
		}
		return fmt.Errorf("consume reset record: %w", err)
	}
	return nil
}

// Invalidate discards any pending record, e.g. when the secret could
// not be delivered.
func (s *ResetService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return s.resets.InvalidateByUser(ctx, userID)
}
