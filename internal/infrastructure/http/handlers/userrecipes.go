package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipebox/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipebox/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"go.uber.org/zap"
)

// UserRecipeHandlers serves /api/userrecipe. Every route requires an authenticated caller.
type UserRecipeHandlers struct {
	base
	userRecipes inbound.UserRecipeService
	metrics     *monitoring.MetricsCollector
}

// NewUserRecipeHandlers creates the user recipe handlers. metrics may be nil.
func NewUserRecipeHandlers(userRecipes inbound.UserRecipeService, metrics *monitoring.MetricsCollector, logger *zap.Logger) *UserRecipeHandlers {
	return &UserRecipeHandlers{
		base:        newBase(logger.Named("user-recipe-handlers")),
		userRecipes: userRecipes,
		metrics:     metrics,
	}
}

// Add handles POST /api/userrecipe
func (h *UserRecipeHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var cmd inbound.UserRecipeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	cmd.UserID = userID

	if err := h.userRecipes.Add(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventUserRecipeSaved)
	h.writeJSON(w, http.StatusOK, response.Message{Message: MessageAdded})
}

// UpdateStatus handles PUT /api/userrecipe
func (h *UserRecipeHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var cmd inbound.UserRecipeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	cmd.UserID = userID

	if err := h.userRecipes.UpdateStatus(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Message{Message: MessageUpdated})
}

// Remove handles DELETE /api/userrecipe
func (h *UserRecipeHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req RemoveUserRecipeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.userRecipes.Remove(r.Context(), userID, req.RecipeName); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Message{Message: MessageRemoved})
}

// ListMine handles GET /api/userrecipe/my?status=
func (h *UserRecipeHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	recipes, err := h.userRecipes.ListMine(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipes)
}

// AskUserAI handles POST /api/userrecipe/ask-user-ai
func (h *UserRecipeHandlers) AskUserAI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req QuestionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	answer, err := h.userRecipes.AskUserAI(r.Context(), userID, req.Question, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, answer)
}
