package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/tektai/tektai-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string, role domain.Role) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*domain.User, error)
	List(ctx context.Context, limit, offset int, roles []string) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
