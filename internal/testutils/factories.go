// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id           string
	name         string
	ingredients  []string
	instructions string
	cuisine      string
	prepTime     int
	status       recipe.Status
}

// NewRecipeBuilder creates a new recipe builder with random values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	ingredients := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		ingredients = append(ingredients, faker.Vegetable())
	}

	return &RecipeBuilder{
		id:           uuid.New().String(),
		name:         faker.Dinner(),
		ingredients:  ingredients,
		instructions: faker.Sentence(10),
		cuisine:      faker.RandomString([]string{"Italian", "Mexican", "Japanese", "Indian", "French"}),
		prepTime:     faker.Number(5, 120),
	}
}

// WithID sets the recipe id
func (b *RecipeBuilder) WithID(id string) *RecipeBuilder {
	b.id = id
	return b
}

// WithName sets the recipe name
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.name = name
	return b
}

// WithIngredients sets the ingredient list
func (b *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	b.ingredients = ingredients
	return b
}

// WithInstructions sets the instructions
func (b *RecipeBuilder) WithInstructions(instructions string) *RecipeBuilder {
	b.instructions = instructions
	return b
}

// WithCuisine sets the cuisine type
func (b *RecipeBuilder) WithCuisine(cuisine string) *RecipeBuilder {
	b.cuisine = cuisine
	return b
}

// WithPrepTime sets the preparation time in minutes
func (b *RecipeBuilder) WithPrepTime(minutes int) *RecipeBuilder {
	b.prepTime = minutes
	return b
}

// WithStatus sets the recipe status
func (b *RecipeBuilder) WithStatus(status recipe.Status) *RecipeBuilder {
	b.status = status
	return b
}

// WithoutID clears the id so a store can assign one
func (b *RecipeBuilder) WithoutID() *RecipeBuilder {
	b.id = ""
	return b
}

// Build creates the recipe
func (b *RecipeBuilder) Build() *recipe.Recipe {
	return &recipe.Recipe{
		ID:              b.id,
		Name:            b.name,
		Ingredients:     append([]string(nil), b.ingredients...),
		Instructions:    b.instructions,
		CuisineType:     b.cuisine,
		PreparationTime: b.prepTime,
		Status:          b.status,
	}
}

// BuildMany creates count recipes with distinct ids and names
func (b *RecipeBuilder) BuildMany(count int) []*recipe.Recipe {
	faker := gofakeit.New(time.Now().UnixNano())
	recipes := make([]*recipe.Recipe, 0, count)
	for i := 0; i < count; i++ {
		r := b.Build()
		r.ID = uuid.New().String()
		r.Name = faker.Dinner() + " " + faker.Noun()
		recipes = append(recipes, r)
	}
	return recipes
}

// UserBuilder provides a fluent interface for building test users
type UserBuilder struct {
	id           string
	username     string
	passwordHash string
	email        string
	role         user.Role
}

// NewUserBuilder creates a new user builder with random values
func NewUserBuilder() *UserBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &UserBuilder{
		id:           uuid.New().String(),
		username:     faker.Username(),
		passwordHash: "hashed-" + faker.Password(true, true, true, false, false, 12),
		email:        faker.Email(),
		role:         user.RoleUser,
	}
}

// WithID sets the user id
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.id = id
	return b
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPasswordHash sets the stored password hash
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.passwordHash = hash
	return b
}

// AsAdmin gives the user the Admin role
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = user.RoleAdmin
	return b
}

// Build creates the user
func (b *UserBuilder) Build() *user.User {
	return &user.User{
		ID:           b.id,
		Username:     b.username,
		PasswordHash: b.passwordHash,
		Email:        b.email,
		Role:         b.role,
	}
}

// RandomPassword returns a password accepted by registration
func RandomPassword() string {
	return gofakeit.Password(true, true, true, true, false, 14)
}
