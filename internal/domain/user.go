package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsBlocked    bool      `db:"is_blocked" json:"is_blocked"`
	PhoneNumber  *string   `db:"phone_number" json:"phone_number,omitempty"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	Birthday     *string   `db:"birthday" json:"birthday,omitempty"`
	CompanyName  *string   `db:"company_name" json:"company_name,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	ImageURL     *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries optional profile fields; nil means "leave as
// is". Credential and role changes go through dedicated store calls.
type ProfileUpdate struct {
	PhoneNumber *string
	Bio         *string
	Birthday    *string
	CompanyName *string
	Address     *string
	ImageURL    *string
}
