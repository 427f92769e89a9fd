package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipebox/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipebox/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccountHandlers serves /api/account
type AccountHandlers struct {
	base
	accounts inbound.AccountService
	metrics  *monitoring.MetricsCollector
}

// NewAccountHandlers creates the account handlers. metrics may be nil.
func NewAccountHandlers(accounts inbound.AccountService, metrics *monitoring.MetricsCollector, logger *zap.Logger) *AccountHandlers {
	return &AccountHandlers{
		base:     newBase(logger.Named("account-handlers")),
		accounts: accounts,
		metrics:  metrics,
	}
}

// Login handles POST /api/account/login
func (h *AccountHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.accounts.Login(r.Context(), cmd)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeInvalidCredentials) {
			h.metrics.RecordEvent(monitoring.EventLoginFailed)
		}
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventLoginSucceeded)
	h.writeJSON(w, http.StatusOK, result)
}

// Register handles POST /api/account/register
func (h *AccountHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.accounts.Register(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventUserRegistered)
	h.writeJSON(w, http.StatusOK, response.Message{Message: MessageUserRegistered})
}

// DeleteUser handles DELETE /api/account/{username}
func (h *AccountHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.accounts.DeleteUser(r.Context(), username); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventUserDeleted)
	h.writeJSON(w, http.StatusOK, response.Message{Message: MessageUserDeleted})
}

// ListUsers handles GET /api/account/all
func (h *AccountHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	names, err := h.accounts.ListUsernames(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}
