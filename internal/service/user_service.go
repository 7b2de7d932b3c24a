package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/tektai/tektai-backend/internal/domain"
	"github.com/tektai/tektai-backend/internal/media"
	"github.com/tektai/tektai-backend/internal/repository/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// UserService covers the profile CRUD surface around the auth core.
type UserService struct {
	users          ports.UserRepository
	storage        ports.ObjectStorage
	avatarBucket   string
	avatarMaxBytes int64
}

func NewUserService(users ports.UserRepository, storage ports.ObjectStorage, avatarBucket string, avatarMaxBytes int64) *UserService {
	return &UserService{
		users:          users,
		storage:        storage,
		avatarBucket:   avatarBucket,
		avatarMaxBytes: avatarMaxBytes,
	}
}

func (s *UserService) List(ctx context.Context, limit, offset int, roles []string) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	normalized := make([]string, 0, len(roles))
	for _, raw := range roles {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, raw)
		}
		normalized = append(normalized, role.String())
	}

	users, err := s.users.List(ctx, limit, offset, normalized)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	if !canModify(actor, id) {
		return nil, ErrForbidden
	}
	user, err := s.users.UpdateProfile(ctx, id, update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// SetBlocked flips the login gate for an account. Admin only.
func (s *UserService) SetBlocked(ctx context.Context, actor *domain.User, id uuid.UUID, blocked bool) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	user, err := s.users.SetBlocked(ctx, id, blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set blocked: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if !canModify(actor, id) {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, actor *domain.User, id uuid.UUID, upload media.Upload) (*domain.User, error) {
	if !canModify(actor, id) {
		return nil, ErrForbidden
	}
	if s.storage == nil {
		return nil, errors.New("avatar storage not configured")
	}

	avatar, err := media.ValidateAvatar(upload, s.avatarMaxBytes)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) || errors.Is(err, media.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("validate avatar: %w", err)
	}

	ext := path.Ext(upload.FileName)
	if ext == "" {
		ext = "." + strings.TrimPrefix(avatar.ContentType, "image/")
	}
	objectName := fmt.Sprintf("avatars/%s%s", id, strings.ToLower(ext))

	url, err := s.storage.Upload(ctx, s.avatarBucket, objectName, avatar.ContentType, bytes.NewReader(avatar.Bytes), int64(len(avatar.Bytes)))
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	return s.UpdateProfile(ctx, actor, id, domain.ProfileUpdate{ImageURL: &url})
}

func canModify(actor *domain.User, target uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == target || actor.IsAdmin()
}
