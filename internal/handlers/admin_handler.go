package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"littlestar/internal/security"
	"littlestar/internal/service"
)

// AdminHandler serves the token-protected admin API.
type AdminHandler struct {
	admin      *service.AdminService
	activities *service.ActivityService
	email      *service.EmailService
	tokens     *security.TokenIssuer
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(admin *service.AdminService, activities *service.ActivityService, email *service.EmailService, tokens *security.TokenIssuer) *AdminHandler {
	return &AdminHandler{
		admin:      admin,
		activities: activities,
		email:      email,
		tokens:     tokens,
	}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login and issues a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if err := h.admin.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrAdminDisabled) {
			respondError(w, http.StatusForbidden, "Admin access is not configured.", nil)
			return
		}
		respondError(w, http.StatusUnauthorized, "Invalid username or password.", nil)
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not issue token.", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load users.", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load stats.", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type pruneLogsRequest struct {
	DaysToKeep int `json:"daysToKeep"`
}

// PruneLogs handles POST /api/admin/logs/prune. A missing or zero
// daysToKeep falls back to the configured retention.
func (h *AdminHandler) PruneLogs(defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pruneLogsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body.", err)
			return
		}
		days := req.DaysToKeep
		if days <= 0 {
			days = defaultDays
		}

		deleted, err := h.activities.PruneOldLogs(days)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Could not prune logs.", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"deleted": deleted,
			"message": fmt.Sprintf("Deleted %d activity entries older than %d days.", deleted, days),
		})
	}
}

type testEmailRequest struct {
	To string `json:"to"`
}

// TestEmail handles POST /api/admin/test-email, sending a short probe
// message to verify mail delivery is configured.
func (h *AdminHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if req.To == "" {
		respondError(w, http.StatusBadRequest, "Recipient address is required.", nil)
		return
	}

	if err := h.email.SendTestEmail(r.Context(), req.To); err != nil {
		respondError(w, http.StatusInternalServerError, "Test email could not be delivered.", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Test email sent to %s.", req.To),
	})
}

// RunDailySweep handles POST /api/admin/daily-sweep, triggering the
// full parent report sweep immediately.
func (h *AdminHandler) RunDailySweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.activities.SendDailyLogsToAllParents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Daily sweep failed.", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
