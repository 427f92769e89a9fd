package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameRequired        = errors.New("recipe name is required")
	ErrNegativePrepTime    = errors.New("preparation time must not be negative")
	ErrInvalidStatus       = errors.New("invalid recipe status")
	ErrEmptyIngredientName = errors.New("ingredient must not be empty")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrIDMismatch     = errors.New("recipe id does not match")
)
