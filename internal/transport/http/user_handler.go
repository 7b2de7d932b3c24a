package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tektai/tektai-backend/internal/domain"
	"github.com/tektai/tektai-backend/internal/media"
	"github.com/tektai/tektai-backend/internal/service"
	"github.com/tektai/tektai-backend/internal/util"
)

// RegisterUsers mounts the user CRUD endpoints around the auth core.
func RegisterUsers(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	g := e.Group("/users")

	// ListUsers godoc
	// @Summary List accounts
	// @Tags users
	// @Produce json
	// @Param limit query int false "page size"
	// @Param offset query int false "page offset"
	// @Param role query string false "comma-separated role filter"
	// @Security BearerAuth
	// @Success 200 {object} UsersListResponse
	// @Router /users/getall [get]
	g.GET("/getall", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))

		var roles []string
		if raw := strings.TrimSpace(c.QueryParam("role")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					roles = append(roles, trimmed)
				}
			}
		}

		list, err := users.List(c.Request().Context(), limit, offset, roles)
		if err != nil {
			return writeServiceError(c, err)
		}

		out := make([]AuthUser, 0, len(list))
		for i := range list {
			out = append(out, toAuthUser(&list[i]))
		}
		return c.JSON(http.StatusOK, UsersListResponse{
			Users: out,
			Meta:  UsersMeta{Limit: limit, Offset: offset, Count: len(out)},
		})
	}, RequireAuth(auth))

	// GetUser godoc
	// @Summary Fetch a public profile by username
	// @Tags users
	// @Produce json
	// @Param username path string true "username"
	// @Success 200 {object} AuthUser
	// @Failure 404 {object} ErrorResponse
	// @Router /users/get/{username} [get]
	g.GET("/get/:username", func(c echo.Context) error {
		user, err := users.GetByUsername(c.Request().Context(), c.Param("username"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, toAuthUser(user))
	})

	g.PUT("/:userId", func(c echo.Context) error {
		actor, _ := CurrentUser(c)
		id, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
		}
		var req UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		user, err := users.UpdateProfile(c.Request().Context(), actor, id, domain.ProfileUpdate{
			PhoneNumber: req.PhoneNumber,
			Bio:         req.Bio,
			Birthday:    req.Birthday,
			CompanyName: req.CompanyName,
			Address:     req.Address,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, toAuthUser(user))
	}, RequireAuth(auth))

	g.PUT("/:userId/avatar", func(c echo.Context) error {
		actor, _ := CurrentUser(c)
		id, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
		}
		file, err := c.FormFile("image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("missing image file"))
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("unable to read image file"))
		}
		defer src.Close()

		user, err := users.UpdateAvatar(c.Request().Context(), actor, id, media.Upload{
			Reader:      src,
			Size:        file.Size,
			FileName:    file.Filename,
			ContentType: file.Header.Get(echo.HeaderContentType),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, toAuthUser(user))
	}, RequireAuth(auth))

	g.PUT("/:userId/block", blockHandler(users, true), RequireAuth(auth), RequireAdmin())
	g.PUT("/:userId/unblock", blockHandler(users, false), RequireAuth(auth), RequireAdmin())

	g.DELETE("/:userId", func(c echo.Context) error {
		actor, _ := CurrentUser(c)
		id, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
		}
		if err := users.Delete(c.Request().Context(), actor, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
	}, RequireAuth(auth))
}

func blockHandler(users *service.UserService, blocked bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, _ := CurrentUser(c)
		id, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
		}
		user, err := users.SetBlocked(c.Request().Context(), actor, id, blocked)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, toAuthUser(user))
	}
}
