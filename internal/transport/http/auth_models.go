package http

import "time"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// AuthUser models the sanitized user representation returned by the API.
type AuthUser struct {
	ID          string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Username    string    `json:"username" example:"alice"`
	Email       string    `json:"email" example:"alice@example.com"`
	Role        string    `json:"role" example:"challenger"`
	IsBlocked   bool      `json:"is_blocked" example:"false"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Birthday    *string   `json:"birthday,omitempty"`
	CompanyName *string   `json:"company_name,omitempty"`
	Address     *string   `json:"address,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

// AuthTokenResponse is returned by login.
type AuthTokenResponse struct {
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser `json:"user"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"password reset email sent"`
}

// UsersListResponse is returned by the users listing endpoint.
type UsersListResponse struct {
	Users []AuthUser `json:"users"`
	Meta  UsersMeta  `json:"meta"`
}

// UsersMeta describes pagination metadata for user listings.
type UsersMeta struct {
	Limit  int `json:"limit" example:"20"`
	Offset int `json:"offset" example:"0"`
	Count  int `json:"count" example:"2"`
}

// SignupRequest carries registration fields.
type SignupRequest struct {
	Username     string `json:"username" example:"alice"`
	Email        string `json:"email" example:"alice@example.com"`
	Password     string `json:"password" example:"correct horse battery staple"`
	Role         string `json:"role" example:"challenger"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// LoginRequest carries login fields.
type LoginRequest struct {
	Username     string `json:"username" example:"alice"`
	Password     string `json:"password" example:"correct horse battery staple"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// ForgetPasswordRequest captures the payload for requesting a reset.
type ForgetPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetPasswordRequest captures the payload for confirming a reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" example:"alice@example.com"`
	Token       string `json:"token" example:"9f2c7b..."`
	NewPassword string `json:"newPassword" example:"an even longer passphrase"`
}

// UpdateUserRequest carries optional profile fields; absent fields are
// left untouched.
type UpdateUserRequest struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Birthday    *string `json:"birthday,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Address     *string `json:"address,omitempty"`
}
