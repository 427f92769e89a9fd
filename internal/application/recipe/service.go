// Package recipe provides the application layer for recipe management
package recipe

import (
	"context"
	"errors"

	"github.com/alchemorsel/recipebox/internal/application/ai"
	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"go.uber.org/zap"
)

// Service implements inbound.RecipeService
type Service struct {
	recipes     outbound.RecipeRepository
	userRecipes outbound.UserRecipeRepository
	assistant   inbound.RecipeAssistant
	logger      *zap.Logger
}

// NewService creates a new recipe service
func NewService(
	recipes outbound.RecipeRepository,
	userRecipes outbound.UserRecipeRepository,
	assistant inbound.RecipeAssistant,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:     recipes,
		userRecipes: userRecipes,
		assistant:   assistant,
		logger:      logger.Named("recipe-service"),
	}
}

// List returns every recipe
func (s *Service) List(ctx context.Context) ([]*inbound.RecipeDTO, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, MapError(err, "list recipes", "")
	}
	return ToDTOs(recipes), nil
}

// Get returns a single recipe
func (s *Service) Get(ctx context.Context, id string) (*inbound.RecipeDTO, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, MapError(err, "load recipe", id)
	}
	return ToDTO(r), nil
}

// Search matches query against recipe names and cuisine types.
// An empty query matches every recipe.
func (s *Service) Search(ctx context.Context, query string) ([]*inbound.RecipeDTO, error) {
	recipes, err := s.recipes.Search(ctx, query)
	if err != nil {
		return nil, MapError(err, "search recipes", "")
	}
	return ToDTOs(recipes), nil
}

// Create stores a new recipe and returns it with its assigned id
func (s *Service) Create(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	r, err := recipe.NewRecipe(cmd.Name, cmd.Ingredients, cmd.Instructions, cmd.CuisineType, cmd.PreparationTime, cmd.Status)
	if err != nil {
		return nil, MapError(err, "create recipe", "")
	}

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, MapError(err, "create recipe", "")
	}

	s.logger.Info("Recipe created", zap.String("recipe_id", r.ID), zap.String("name", r.Name))
	return ToDTO(r), nil
}

// Update replaces a recipe. The body id must equal the path id.
func (s *Service) Update(ctx context.Context, cmd inbound.UpdateRecipeCommand) error {
	if err := recipe.CheckID(cmd.PathID, cmd.ID); err != nil {
		return apperrors.NewIDMismatchError(cmd.PathID, cmd.ID)
	}

	r, err := recipe.NewRecipe(cmd.Name, cmd.Ingredients, cmd.Instructions, cmd.CuisineType, cmd.PreparationTime, cmd.Status)
	if err != nil {
		return MapError(err, "update recipe", cmd.PathID)
	}
	r.ID = cmd.PathID

	if err := s.recipes.Replace(ctx, r); err != nil {
		return MapError(err, "update recipe", cmd.PathID)
	}

	s.logger.Info("Recipe replaced", zap.String("recipe_id", r.ID))
	return nil
}

// Delete removes a recipe and every association that references it
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return MapError(err, "delete recipe", id)
	}

	removed, err := s.userRecipes.DeleteByRecipe(ctx, id)
	if err != nil {
		// The recipe is already gone; orphans are skipped by readers.
		s.logger.Error("Failed to delete recipe associations",
			zap.String("recipe_id", id),
			zap.Error(err),
		)
	}

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", id),
		zap.Int64("associations_removed", removed),
	)
	return nil
}

// PatchStatus sets only the status of a recipe
func (s *Service) PatchStatus(ctx context.Context, id, status string) (*inbound.RecipeDTO, error) {
	parsed, err := recipe.ParseStatus(status)
	if err != nil {
		return nil, apperrors.NewInvalidStatusError(status)
	}

	r, err := s.recipes.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, MapError(err, "update recipe status", id)
	}
	return ToDTO(r), nil
}

// AskAI answers question using every stored recipe
func (s *Service) AskAI(ctx context.Context, question string) (*inbound.AnswerDTO, error) {
	recipes, err := s.recipes.List(ctx)
	if err != nil {
		return nil, MapError(err, "list recipes", "")
	}

	answer, err := s.assistant.Ask(ctx, ai.AllRecipesIntro, recipes, question)
	if err != nil {
		return nil, err
	}
	return &inbound.AnswerDTO{Answer: answer}, nil
}

// MapError converts domain and repository errors into application errors.
// Errors that already carry a code, and upstream failures, pass through.
func MapError(err error, operation, ref string) error {
	var upstream *outbound.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, recipe.ErrRecipeNotFound):
		return apperrors.NewRecipeNotFoundError(ref)
	case errors.Is(err, recipe.ErrInvalidStatus):
		return apperrors.NewInvalidStatusError("")
	case errors.Is(err, recipe.ErrNameRequired),
		errors.Is(err, recipe.ErrNegativePrepTime),
		errors.Is(err, recipe.ErrEmptyIngredientName):
		return apperrors.NewValidationError(err.Error())
	default:
		return apperrors.NewDatabaseError(operation, err)
	}
}

// ToDTO converts a recipe entity to its wire form
func ToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &inbound.RecipeDTO{
		ID:              r.ID,
		Name:            r.Name,
		Ingredients:     ingredients,
		Instructions:    r.Instructions,
		CuisineType:     r.CuisineType,
		PreparationTime: r.PreparationTime,
		Status:          r.Status.String(),
	}
}

// ToDTOs converts a slice of entities, never returning nil
func ToDTOs(recipes []*recipe.Recipe) []*inbound.RecipeDTO {
	dtos := make([]*inbound.RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		dtos = append(dtos, ToDTO(r))
	}
	return dtos
}
