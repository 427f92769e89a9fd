// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// List returns every recipe
func (m *MockRecipeRepository) List(ctx context.Context) ([]*recipe.Recipe, error) {
	args := m.Called(ctx)
	return recipes(args.Get(0)), args.Error(1)
}

// FindByID finds a recipe by ID
func (m *MockRecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*recipe.Recipe); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByIDs returns the recipes among ids
func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	return recipes(args.Get(0)), args.Error(1)
}

// Search matches query against names and cuisine types
func (m *MockRecipeRepository) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, query)
	return recipes(args.Get(0)), args.Error(1)
}

// Create stores a recipe
func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Replace overwrites a recipe
func (m *MockRecipeRepository) Replace(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Delete deletes a recipe
func (m *MockRecipeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UpdateStatus sets the status of a recipe
func (m *MockRecipeRepository) UpdateStatus(ctx context.Context, id string, status recipe.Status) (*recipe.Recipe, error) {
	args := m.Called(ctx, id, status)
	if r, ok := args.Get(0).(*recipe.Recipe); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

// Create stores a user
func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete deletes a user
func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListUsernames returns every username
func (m *MockUserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// MockUserRecipeRepository provides a mock implementation of UserRecipeRepository
type MockUserRecipeRepository struct {
	mock.Mock
}

// Upsert inserts or replaces an association
func (m *MockUserRecipeRepository) Upsert(ctx context.Context, ur *userrecipe.UserRecipe) error {
	args := m.Called(ctx, ur)
	return args.Error(0)
}

// Find returns one association
func (m *MockUserRecipeRepository) Find(ctx context.Context, userID, recipeID string) (*userrecipe.UserRecipe, error) {
	args := m.Called(ctx, userID, recipeID)
	if ur, ok := args.Get(0).(*userrecipe.UserRecipe); ok {
		return ur, args.Error(1)
	}
	return nil, args.Error(1)
}

// List returns the associations matching filter
func (m *MockUserRecipeRepository) List(ctx context.Context, filter userrecipe.Filter) ([]*userrecipe.UserRecipe, error) {
	args := m.Called(ctx, filter)
	associations, _ := args.Get(0).([]*userrecipe.UserRecipe)
	return associations, args.Error(1)
}

// Delete removes one association
func (m *MockUserRecipeRepository) Delete(ctx context.Context, userID, recipeID string) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

// DeleteByRecipe removes every association referencing recipeID
func (m *MockUserRecipeRepository) DeleteByRecipe(ctx context.Context, recipeID string) (int64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteByUser removes every association owned by userID
func (m *MockUserRecipeRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockChatCompletionClient provides a mock chat-completion client
type MockChatCompletionClient struct {
	mock.Mock
}

// Complete returns the scripted answer
func (m *MockChatCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockRecipeAssistant provides a mock inbound.RecipeAssistant
type MockRecipeAssistant struct {
	mock.Mock
}

// Ask returns the scripted answer
func (m *MockRecipeAssistant) Ask(ctx context.Context, intro string, rs []*recipe.Recipe, question string) (string, error) {
	args := m.Called(ctx, intro, rs, question)
	return args.String(0), args.Error(1)
}

// MockPasswordHasher provides a mock password hasher
type MockPasswordHasher struct {
	mock.Mock
}

// Hash hashes a password
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Compare verifies a password against a hash
func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenIssuer provides a mock token issuer
type MockTokenIssuer struct {
	mock.Mock
}

// Issue signs a token for u
func (m *MockTokenIssuer) Issue(u *user.User) (*outbound.IssuedToken, error) {
	args := m.Called(u)
	if t, ok := args.Get(0).(*outbound.IssuedToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func recipes(v interface{}) []*recipe.Recipe {
	rs, _ := v.([]*recipe.Recipe)
	return rs
}

// Compile-time interface checks
var (
	_ outbound.RecipeRepository     = (*MockRecipeRepository)(nil)
	_ outbound.UserRepository       = (*MockUserRepository)(nil)
	_ outbound.UserRecipeRepository = (*MockUserRecipeRepository)(nil)
	_ outbound.ChatCompletionClient = (*MockChatCompletionClient)(nil)
	_ outbound.PasswordHasher       = (*MockPasswordHasher)(nil)
	_ outbound.TokenIssuer          = (*MockTokenIssuer)(nil)
)
