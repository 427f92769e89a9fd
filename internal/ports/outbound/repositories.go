// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
)

// RecipeRepository defines the interface for recipe persistence.
// Lookups of an unknown id return recipe.ErrRecipeNotFound.
type RecipeRepository interface {
	List(ctx context.Context) ([]*recipe.Recipe, error)
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error)

	// Search matches query case-insensitively as a substring of name or cuisine type.
	Search(ctx context.Context, query string) ([]*recipe.Recipe, error)

	// Create assigns r.ID
	Create(ctx context.Context, r *recipe.Recipe) error
	Replace(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status recipe.Status) (*recipe.Recipe, error)
}

// UserRepository defines the interface for credential persistence
type UserRepository interface {
	// Create assigns u.ID and returns user.ErrUsernameTaken on a duplicate username
	Create(ctx context.Context, u *user.User) error
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Delete(ctx context.Context, id string) error
	ListUsernames(ctx context.Context) ([]string, error)
}

// UserRecipeRepository defines the interface for association persistence
type UserRecipeRepository interface {
	// Upsert inserts or replaces the record keyed on (UserID, RecipeID)
	Upsert(ctx context.Context, ur *userrecipe.UserRecipe) error
	Find(ctx context.Context, userID, recipeID string) (*userrecipe.UserRecipe, error)
	List(ctx context.Context, filter userrecipe.Filter) ([]*userrecipe.UserRecipe, error)
	Delete(ctx context.Context, userID, recipeID string) error

	DeleteByRecipe(ctx context.Context, recipeID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Pinger is implemented by stores that can report their liveness
type Pinger interface {
	Ping(ctx context.Context) error
}
