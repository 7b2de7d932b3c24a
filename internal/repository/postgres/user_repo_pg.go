package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tektai/tektai-backend/internal/domain"
)

const userColumns = `id, username, email, password_hash, role, is_blocked, phone_number, bio, birthday, company_name, address, image_url, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string, role domain.Role) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (username, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, username, email, passwordHash, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE username = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	const query = `
        UPDATE user_account
        SET phone_number = COALESCE($2, phone_number),
            bio = COALESCE($3, bio),
            birthday = COALESCE($4, birthday),
            company_name = COALESCE($5, company_name),
            address = COALESCE($6, address),
            image_url = COALESCE($7, image_url),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, id,
		update.PhoneNumber, update.Bio, update.Birthday,
		update.CompanyName, update.Address, update.ImageURL)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}

func (r *UserRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*domain.User, error) {
	const query = `
        UPDATE user_account
        SET is_blocked = $2,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, id, blocked)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int, roles []string) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE ($3::text[] IS NULL OR role = ANY($3))
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	var roleFilter interface{}
	if len(roles) > 0 {
		roleFilter = pq.StringArray(roles)
	}
	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, limit, offset, roleFilter); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM user_account WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
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
	return nil
}
