package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/auth"
)

// SecurityReader defines the trail accessors needed by security handlers.
// Satisfied by *auth.Service; narrow interface for testability.
type SecurityReader interface {
	LoginAttempts() []auth.LoginAttempt
	AuditLog() []auth.AuditEntry
	Suspicious() []auth.SuspiciousActivity
}

// SecurityHandler exposes the security trail to admins.
type SecurityHandler struct {
	svc SecurityReader
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(svc SecurityReader) *SecurityHandler {
	return &SecurityHandler{svc: svc}
}

// RegisterRoutes registers security endpoints on the given Chi router.
// Expected to be mounted behind the admin role check.
func (h *SecurityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/security/login-attempts", h.LoginAttempts)
	r.Get("/security/audit-log", h.AuditLog)
	r.Get("/security/suspicious", h.Suspicious)
}

// LoginAttempts handles GET /security/login-attempts.
func (h *SecurityHandler) LoginAttempts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": h.svc.LoginAttempts()})
}

// AuditLog handles GET /security/audit-log.
func (h *SecurityHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": h.svc.AuditLog()})
}

// Suspicious handles GET /security/suspicious.
func (h *SecurityHandler) Suspicious(w http.ResponseWriter, r *http.Request) {
	activities := h.svc.Suspicious()
	if activities == nil {
		activities = []auth.SuspiciousActivity{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"activities": activities})
}
