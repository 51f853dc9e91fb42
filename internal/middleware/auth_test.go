package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globetrotter-backend/internal/models"
	"globetrotter-backend/internal/services"
)

func testAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	return services.NewAuthService(nil, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User-ID", GetUserID(r.Context()))
		w.Header().Set("X-Role", GetRole(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	svc := testAuthService(t)
	handler := AuthMiddleware(svc)(echoIdentity())

	t.Run("ValidToken", func(t *testing.T) {
		token, err := svc.GenerateJWT("user-1", models.RoleUser)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		if got := rec.Header().Get("X-User-ID"); got != "user-1" {
			t.Errorf("Expected user id user-1 in context, got %q", got)
		}
		if got := rec.Header().Get("X-Role"); got != models.RoleUser {
			t.Errorf("Expected role %s in context, got %q", models.RoleUser, got)
		}
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := testAuthService(t)
	handler := AuthMiddleware(svc)(RequireAdmin(echoIdentity()))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := svc.GenerateJWT("admin-1", models.RoleAdmin)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("UserForbidden", func(t *testing.T) {
		token, err := svc.GenerateJWT("user-1", models.RoleUser)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", rec.Code)
		}
	})
}
