// Package recipe contains the recipe entity and its value objects.
package recipe

import (
	"fmt"
	"strings"
)

// Recipe is a stored recipe record. ID is assigned by the store on creation.
type Recipe struct {
	ID              string
	Name            string
	Ingredients     []string
	Instructions    string
	CuisineType     string
	PreparationTime int // minutes
	Status          Status
}

// NewRecipe creates a Recipe with validation. The id is left empty for the store to assign.
func NewRecipe(name string, ingredients []string, instructions, cuisineType string, prepTime int, status string) (*Recipe, error) {
	r := &Recipe{
		Name:            strings.TrimSpace(name),
		Ingredients:     ingredients,
		Instructions:    instructions,
		CuisineType:     cuisineType,
		PreparationTime: prepTime,
	}

	parsed, err := ParseOptionalStatus(status)
	if err != nil {
		return nil, err
	}
	r.Status = parsed

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}

	return r, nil
}

// Validate checks the entity invariants
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.PreparationTime < 0 {
		return ErrNegativePrepTime
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return ErrEmptyIngredientName
		}
	}
	if r.Status != "" {
		if _, err := ParseStatus(string(r.Status)); err != nil {
			return err
		}
	}
	return nil
}

// CheckID verifies that a replacement body targets the record named by pathID
func CheckID(pathID, bodyID string) error {
	if bodyID == "" || bodyID != pathID {
		return ErrIDMismatch
	}
	return nil
}

// NameEquals reports whether name matches the recipe name ignoring case.
// Surrounding whitespace is significant.
func (r *Recipe) NameEquals(name string) bool {
	return strings.EqualFold(r.Name, name)
}

// PromptLine renders the recipe as a single line of an AI prompt.
func (r *Recipe) PromptLine() string {
	return fmt.Sprintf("- %s: Ingredients: %s. Cuisine: %s. PrepTime: %dmin. Instructions: %s",
		r.Name,
		strings.Join(r.Ingredients, ", "),
		r.CuisineType,
		r.PreparationTime,
		r.Instructions,
	)
}

// WithStatus returns a copy of the recipe carrying the given status.
func (r Recipe) WithStatus(status Status) *Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	r.Status = status
	return &r
}
