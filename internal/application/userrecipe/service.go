// Package userrecipe provides the use cases over a user's personal recipe tags
package userrecipe

import (
	"context"
	"errors"

	"github.com/alchemorsel/recipebox/internal/application/ai"
	recipeapp "github.com/alchemorsel/recipebox/internal/application/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"go.uber.org/zap"
)

// NoRecipesAnswer is returned by AskUserAI when the caller has no matching recipes
const NoRecipesAnswer = "No recipes found for your request."

// Service implements inbound.UserRecipeService
type Service struct {
	recipes     outbound.RecipeRepository
	userRecipes outbound.UserRecipeRepository
	assistant   inbound.RecipeAssistant
	logger      *zap.Logger
}

// NewService creates a new user recipe service
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
		logger:      logger.Named("user-recipe-service"),
	}
}

// Add tags a recipe for the caller, replacing any previous tag
func (s *Service) Add(ctx context.Context, cmd inbound.UserRecipeCommand) error {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return err
	}

	r, err := s.resolve(ctx, cmd.RecipeName)
	if err != nil {
		return err
	}

	ur, err := userrecipe.New(cmd.UserID, r.ID, status.String())
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.userRecipes.Upsert(ctx, ur); err != nil {
		return apperrors.NewDatabaseError("save user recipe", err)
	}

	s.logger.Info("User recipe saved",
		zap.String("user_id", cmd.UserID),
		zap.String("recipe_id", r.ID),
		zap.String("status", status.String()),
	)
	return nil
}

// UpdateStatus changes the status of an existing tag
func (s *Service) UpdateStatus(ctx context.Context, cmd inbound.UserRecipeCommand) error {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return err
	}

	r, err := s.resolve(ctx, cmd.RecipeName)
	if err != nil {
		return err
	}

	ur, err := s.userRecipes.Find(ctx, cmd.UserID, r.ID)
	if err != nil {
		return mapAssociationError(err, "load user recipe")
	}

	ur.Status = status
	if err := s.userRecipes.Upsert(ctx, ur); err != nil {
		return apperrors.NewDatabaseError("save user recipe", err)
	}
	return nil
}

// Remove deletes the caller's tag on the named recipe
func (s *Service) Remove(ctx context.Context, userID, recipeName string) error {
	r, err := s.resolve(ctx, recipeName)
	if err != nil {
		return err
	}

	if err := s.userRecipes.Delete(ctx, userID, r.ID); err != nil {
		return mapAssociationError(err, "delete user recipe")
	}

	s.logger.Info("User recipe removed", zap.String("user_id", userID), zap.String("recipe_id", r.ID))
	return nil
}

// ListMine returns the caller's tagged recipes, each carrying the caller's status
func (s *Service) ListMine(ctx context.Context, userID, status string) ([]*inbound.RecipeDTO, error) {
	recipes, err := s.loadMine(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return recipeapp.ToDTOs(recipes), nil
}

// AskUserAI answers question using only the caller's tagged recipes
func (s *Service) AskUserAI(ctx context.Context, userID, question, status string) (*inbound.AnswerDTO, error) {
	recipes, err := s.loadMine(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	if len(recipes) == 0 {
		return &inbound.AnswerDTO{Answer: NoRecipesAnswer}, nil
	}

	answer, err := s.assistant.Ask(ctx, ai.UserRecipesIntro, recipes, question)
	if err != nil {
		return nil, err
	}
	return &inbound.AnswerDTO{Answer: answer}, nil
}

// loadMine fetches the caller's associations and projects the referenced recipes.
// Associations whose recipe no longer exists are skipped.
func (s *Service) loadMine(ctx context.Context, userID, status string) ([]*recipe.Recipe, error) {
	filterStatus, err := recipe.ParseOptionalStatus(status)
	if err != nil {
		return nil, apperrors.NewInvalidStatusError(status)
	}

	associations, err := s.userRecipes.List(ctx, userrecipe.Filter{UserID: userID, Status: filterStatus})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user recipes", err)
	}
	if len(associations) == 0 {
		return []*recipe.Recipe{}, nil
	}

	ids := make([]string, 0, len(associations))
	for _, ur := range associations {
		ids = append(ids, ur.RecipeID)
	}

	found, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load recipes", err)
	}

	byID := make(map[string]*recipe.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	projected := make([]*recipe.Recipe, 0, len(associations))
	for _, ur := range associations {
		r, ok := byID[ur.RecipeID]
		if !ok {
			s.logger.Debug("Skipping association to missing recipe",
				zap.String("user_id", userID),
				zap.String("recipe_id", ur.RecipeID),
			)
			continue
		}
		projected = append(projected, ur.Project(r))
	}

	return projected, nil
}

// resolve finds the recipe whose name equals name ignoring case.
// Substring matches that are not exact do not resolve.
func (s *Service) resolve(ctx context.Context, name string) (*recipe.Recipe, error) {
	if name == "" {
		return nil, apperrors.NewRecipeNotFoundError("")
	}

	candidates, err := s.recipes.Search(ctx, name)
	if err != nil {
		return nil, apperrors.NewDatabaseError("search recipes", err)
	}

	for _, r := range candidates {
		if r.NameEquals(name) {
			return r, nil
		}
	}

	return nil, apperrors.NewRecipeNotFoundError(name)
}

func parseStatus(status string) (recipe.Status, error) {
	parsed, err := recipe.ParseStatus(status)
	if err != nil {
		return "", apperrors.NewInvalidStatusError(status)
	}
	return parsed, nil
}

func mapAssociationError(err error, operation string) error {
	if errors.Is(err, userrecipe.ErrUserRecipeNotFound) {
		return apperrors.NewUserRecipeNotFoundError()
	}
	return apperrors.NewDatabaseError(operation, err)
}
