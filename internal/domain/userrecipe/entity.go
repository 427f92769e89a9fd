// Package userrecipe models a user's personal status on a recipe.
package userrecipe

import (
	"errors"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
)

var (
	ErrUserRecipeNotFound = errors.New("user recipe not found")
	ErrMissingReference   = errors.New("user id and recipe id are required")
)

// UserRecipe links one user to one recipe. There is at most one per (UserID, RecipeID).
type UserRecipe struct {
	ID       string
	UserID   string
	RecipeID string
	Status   recipe.Status
}

// New creates an association after validating the status
func New(userID, recipeID, status string) (*UserRecipe, error) {
	if userID == "" || recipeID == "" {
		return nil, ErrMissingReference
	}
	parsed, err := recipe.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return &UserRecipe{UserID: userID, RecipeID: recipeID, Status: parsed}, nil
}

// Filter selects associations. Empty fields match everything.
type Filter struct {
	UserID string
	Status recipe.Status
}

// Project returns the recipe as seen by the association's owner:
// the personal status replaces the recipe's own status.
func (ur *UserRecipe) Project(r *recipe.Recipe) *recipe.Recipe {
	return r.WithStatus(ur.Status)
}
