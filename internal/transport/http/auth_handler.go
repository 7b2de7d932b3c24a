package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tektai/tektai-backend/internal/domain"
	"github.com/tektai/tektai-backend/internal/service"
	"github.com/tektai/tektai-backend/internal/util"
)

// RegisterAuth mounts the signup, login and password-reset endpoints.
func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	g := e.Group("/auth")

	// Signup godoc
	// @Summary Register a new account
	// @Tags auth
	// @Accept json
	// @Produce json
	// @Param request body SignupRequest true "registration payload"
	// @Success 201 {object} MessageResponse
	// @Failure 400 {object} ErrorResponse
	// @Failure 409 {object} ErrorResponse
	// @Router /auth/signup [post]
	g.POST("/signup", func(c echo.Context) error {
		var req SignupRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		user, err := auth.SignUp(c.Request().Context(), service.SignUpParams{
			Username:     req.Username,
			Email:        req.Email,
			Password:     req.Password,
			Role:         req.Role,
			CaptchaToken: req.CaptchaToken,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "user registered successfully",
			"user":    toAuthUser(user),
		})
	})

	// Login godoc
	// @Summary Exchange credentials for a bearer token
	// @Tags auth
	// @Accept json
	// @Produce json
	// @Param request body LoginRequest true "credentials"
	// @Success 200 {object} AuthTokenResponse
	// @Failure 401 {object} ErrorResponse
	// @Router /auth/login [post]
	g.POST("/login", func(c echo.Context) error {
		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		result, err := auth.Login(c.Request().Context(), req.Username, req.Password, req.CaptchaToken)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, AuthTokenResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
			User:      toAuthUser(result.User),
		})
	})

	// ForgetPassword godoc
	// @Summary Request a password-reset token by email
	// @Tags auth
	// @Accept json
	// @Produce json
	// @Param request body ForgetPasswordRequest true "account email"
	// @Success 200 {object} MessageResponse
	// @Failure 400 {object} ErrorResponse
	// @Router /auth/forget-password [post]
	g.POST("/forget-password", func(c echo.Context) error {
		var req ForgetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		if err := auth.ForgetPassword(c.Request().Context(), req.Email); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: "password reset email sent"})
	})

	// ResetPassword godoc
	// @Summary Consume a reset token and set a new password
	// @Tags auth
	// @Accept json
	// @Produce json
	// @Param request body ResetPasswordRequest true "reset payload"
	// @Success 200 {object} MessageResponse
	// @Failure 401 {object} ErrorResponse
	// @Failure 404 {object} ErrorResponse
	// @Router /auth/reset-password [post]
	g.POST("/reset-password", func(c echo.Context) error {
		var req ResetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		if err := auth.ResetPassword(c.Request().Context(), req.Email, req.Token, req.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: "password reset successfully"})
	})
}

// writeServiceError maps service sentinels onto HTTP statuses. Internal
// failures are logged by the request logger; the client only sees a
// generic message.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrResetNotFound),
		errors.Is(err, service.ErrResetExpired),
		errors.Is(err, service.ErrResetMismatch),
		errors.Is(err, util.ErrTokenExpired),
		errors.Is(err, util.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
	}
}

func toAuthUser(u *domain.User) AuthUser {
	return AuthUser{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role.String(),
		IsBlocked:   u.IsBlocked,
		PhoneNumber: u.PhoneNumber,
		Bio:         u.Bio,
		Birthday:    u.Birthday,
		CompanyName: u.CompanyName,
		Address:     u.Address,
		ImageURL:    u.ImageURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
