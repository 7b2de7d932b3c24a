package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tektai/tektai-backend/internal/domain"
	"github.com/tektai/tektai-backend/internal/util"
)

func TestRequireAuth(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", Role: domain.RoleChallenger}
	auth := newAuthForTests(newStubUserRepo(user))
	token, _, err := util.NewJWTManager("test-secret", time.Hour).Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		current, ok := CurrentUser(c)
		if !ok {
			t.Fatal("expected user in context")
		}
		return c.String(http.StatusOK, current.Username)
	}, RequireAuth(auth))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec.Body.String() != "alice" {
			t.Fatalf("expected handler to see alice, got %q", rec.Body.String())
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("forged token", func(t *testing.T) {
		forged, _, err := util.NewJWTManager("other-secret", time.Hour).Generate(user.ID, user.Email, user.Role.String())
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	admin := RequireAdmin()(handler)

	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("admin", func(t *testing.T) {
		c, rec := newCtx()
		c.Set(contextUserKey, &domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
		if err := admin(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("non-admin", func(t *testing.T) {
		c, rec := newCtx()
		c.Set(contextUserKey, &domain.User{ID: uuid.New(), Role: domain.RoleCompany})
		if err := admin(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("no user in context", func(t *testing.T) {
		c, rec := newCtx()
		if err := admin(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
