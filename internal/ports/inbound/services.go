// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
)

// AccountService defines the account use cases
type AccountService interface {
	Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
	Register(ctx context.Context, cmd RegisterCommand) error
	DeleteUser(ctx context.Context, username string) error
	ListUsernames(ctx context.Context) ([]string, error)

	// EnsureAdmin creates the admin account when it is missing and reports whether it did.
	EnsureAdmin(ctx context.Context) (bool, error)
}

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	List(ctx context.Context) ([]*RecipeDTO, error)
	Get(ctx context.Context, id string) (*RecipeDTO, error)
	Search(ctx context.Context, query string) ([]*RecipeDTO, error)
	Create(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	Update(ctx context.Context, cmd UpdateRecipeCommand) error
	Delete(ctx context.Context, id string) error
	PatchStatus(ctx context.Context, id, status string) (*RecipeDTO, error)
	AskAI(ctx context.Context, question string) (*AnswerDTO, error)
}

// UserRecipeService defines the use cases over a user's personal recipe tags
type UserRecipeService interface {
	Add(ctx context.Context, cmd UserRecipeCommand) error
	UpdateStatus(ctx context.Context, cmd UserRecipeCommand) error
	Remove(ctx context.Context, userID, recipeName string) error
	ListMine(ctx context.Context, userID, status string) ([]*RecipeDTO, error)
	AskUserAI(ctx context.Context, userID, question, status string) (*AnswerDTO, error)
}

// LoginCommand contains login data
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult contains the issued token
type LoginResult struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterCommand contains registration data
type RegisterCommand struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// RecipeDTO is the wire representation of a recipe
type RecipeDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Ingredients     []string `json:"ingredients"`
	Instructions    string   `json:"instructions"`
	CuisineType     string   `json:"cuisineType"`
	PreparationTime int      `json:"preparationTime"`
	Status          string   `json:"status"`
}

// CreateRecipeCommand contains data for creating a recipe
type CreateRecipeCommand struct {
	Name            string   `json:"name" validate:"required"`
	Ingredients     []string `json:"ingredients"`
	Instructions    string   `json:"instructions"`
	CuisineType     string   `json:"cuisineType"`
	PreparationTime int      `json:"preparationTime" validate:"gte=0"`
	Status          string   `json:"status"`
}

// UpdateRecipeCommand replaces a recipe. PathID comes from the URL, ID from the body.
type UpdateRecipeCommand struct {
	PathID string `json:"-"`
	ID     string `json:"id"`
	CreateRecipeCommand
}

// UserRecipeCommand tags a recipe, resolved by exact name, for the calling user
type UserRecipeCommand struct {
	UserID     string `json:"-"`
	RecipeName string `json:"recipeName" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

// AnswerDTO carries the assistant's answer
type AnswerDTO struct {
	Answer string `json:"answer"`
}

// RecipeAssistant answers a question using only the given recipes
type RecipeAssistant interface {
	Ask(ctx context.Context, intro string, recipes []*recipe.Recipe, question string) (string, error)
}
