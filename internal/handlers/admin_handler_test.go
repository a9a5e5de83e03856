package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"littlestar/internal/security"
	"littlestar/internal/service"
)

func newAdminLoginMux(t *testing.T) (*http.ServeMux, *security.TokenIssuer) {
	t.Helper()

	hash, err := security.HashPassword("admin-secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	adminService := service.NewAdminService(nil, nil, "admin", hash)
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	admin := NewAdminHandler(adminService, nil, nil, tokens)
	middleware := NewMiddleware(security.NewRateLimiter(100, time.Minute), tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/login", admin.Login)
	mux.HandleFunc("GET /api/admin/ping", middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	return mux, tokens
}

func TestAdminLogin(t *testing.T) {
	mux, _ := newAdminLoginMux(t)

	t.Run("valid credentials yield a token", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/admin/login", `{"username": "admin", "password": "admin-secret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["token"] == "" {
			t.Error("no token in response")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/admin/login", `{"username": "admin", "password": "wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	mux, tokens := newAdminLoginMux(t)

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authentication required.") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := tokens.Issue("admin")
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestAdminLoginDisabled(t *testing.T) {
	adminService := service.NewAdminService(nil, nil, "admin", "")
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	admin := NewAdminHandler(adminService, nil, nil, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/login", admin.Login)

	rec := postJSON(t, mux, "/api/admin/login", `{"username": "admin", "password": "anything"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 when admin is not configured", rec.Code)
	}
}
