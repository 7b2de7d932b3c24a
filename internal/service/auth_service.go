package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tektai/tektai-backend/internal/domain"
	"github.com/tektai/tektai-backend/internal/repository/ports"
	"github.com/tektai/tektai-backend/internal/risk"
	"github.com/tektai/tektai-backend/internal/util"
)

const (
	riskActionSignup = "signup"
	riskActionLogin  = "login"
)

// PasswordResetSender delivers a freshly generated reset secret to the
// account's email address.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, secret string) error
}

// AuthService composes the hash engine, token issuer and reset ledger
// with the user store to implement the signup, login and password-reset
// flows.
type AuthService struct {
	users  ports.UserRepository
	resets *ResetService
	mailer PasswordResetSender
	jwt    *util.JWTManager

	assessor     risk.Assessor
	minRiskScore float64
}

func NewAuthService(users ports.UserRepository, resets *ResetService, mailer PasswordResetSender, jwt *util.JWTManager, assessor risk.Assessor, minRiskScore float64) *AuthService {
	return &AuthService{
		users:        users,
		resets:       resets,
		mailer:       mailer,
		jwt:          jwt,
		assessor:     assessor,
		minRiskScore: minRiskScore,
	}
}

type SignUpParams struct {
	Username     string
	Email        string
	Password     string
	Role         string
	CaptchaToken string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (*domain.User, error) {
	username := strings.TrimSpace(p.Username)
	email := normalizeEmail(p.Email)
	if username == "" || email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}

	role := domain.DefaultRole
	if strings.TrimSpace(p.Role) != "" {
		parsed, err := domain.ParseRole(p.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, p.Role)
		}
		role = parsed
	}

	if s.assessor != nil {
		score, ok := s.assessor.Score(ctx, p.CaptchaToken, riskActionSignup)
		if !ok || score < s.minRiskScore {
			return nil, fmt.Errorf("%w: request rejected", ErrInvalidInput)
		}
	}

	hash, err := util.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, hash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password, captchaToken string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.assessor != nil {
		score, ok := s.assessor.Score(ctx, captchaToken, riskActionLogin)
		if !ok || score < s.minRiskScore {
			return nil, ErrInvalidCredentials
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.IsBlocked {
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ForgetPassword reports success whether or not the email is
// registered, so callers cannot probe which addresses exist. Delivery
// failures are logged and the record is invalidated, but the caller
// still sees success.
func (s *AuthService) ForgetPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}

	secret, err := s.resets.Generate(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, secret); err != nil {
		log.Printf("auth: reset email for user %s failed: %v", user.ID, err)
		if err := s.resets.Invalidate(ctx, user.ID); err != nil {
			log.Printf("auth: invalidating undelivered reset for user %s failed: %v", user.ID, err)
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, secret, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || secret == "" || newPassword == "" {
		return fmt.Errorf("%w: email, token and new password are required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.resets.Consume(ctx, user.ID, secret, hash)
}

// Authenticate resolves a bearer token to its user. Blocked users are
// rejected even when the token itself still verifies.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrTokenInvalid
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.IsBlocked {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
