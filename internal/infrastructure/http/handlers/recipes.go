package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipebox/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipebox/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecipeHandlers serves /api/recipes
type RecipeHandlers struct {
	base
	recipes inbound.RecipeService
	metrics *monitoring.MetricsCollector
}

// NewRecipeHandlers creates the recipe handlers. metrics may be nil.
func NewRecipeHandlers(recipes inbound.RecipeService, metrics *monitoring.MetricsCollector, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		base:    newBase(logger.Named("recipe-handlers")),
		recipes: recipes,
		metrics: metrics,
	}
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipe)
}

// SearchRecipes handles GET /api/recipes/search?query=
func (h *RecipeHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipes)
}

// CreateRecipe handles POST /api/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateRecipeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.recipes.Create(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventRecipeCreated)
	w.Header().Set("Location", "/api/recipes/"+created.ID)
	h.writeJSON(w, http.StatusCreated, created)
}

// UpdateRecipe handles PUT /api/recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.UpdateRecipeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	cmd.PathID = chi.URLParam(r, "id")

	if err := h.recipes.Update(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w)
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordEvent(monitoring.EventRecipeDeleted)
	response.NoContent(w)
}

// PatchStatus handles PATCH /api/recipes/{id}/status?status=
func (h *RecipeHandlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipes.PatchStatus(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipe)
}

// AskAI handles POST /api/recipes/ask-ai
func (h *RecipeHandlers) AskAI(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	answer, err := h.recipes.AskAI(r.Context(), req.Question)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, answer)
}
