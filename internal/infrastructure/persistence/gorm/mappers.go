package gorm

import (
	"strings"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
)

// UserToModel converts domain user to GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		Role:         string(u.Role),
	}
}

// ModelToUser converts GORM model to domain user
func ModelToUser(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Email:        m.Email,
		Role:         user.Role(m.Role),
	}
}

// RecipeToModel converts domain recipe to GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		Ingredients:     StringSlice(r.Ingredients),
		Instructions:    r.Instructions,
		CuisineType:     r.CuisineType,
		PreparationTime: r.PreparationTime,
		Status:          string(r.Status),
		NameFolded:      foldCase(r.Name),
		CuisineFolded:   foldCase(r.CuisineType),
	}
}

// foldCase is the case folding shared by stored search columns and queries
func foldCase(s string) string {
	return strings.ToLower(s)
}

// ModelToRecipe converts GORM model to domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	ingredients := []string(m.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return &recipe.Recipe{
		ID:              m.ID,
		Name:            m.Name,
		Ingredients:     ingredients,
		Instructions:    m.Instructions,
		CuisineType:     m.CuisineType,
		PreparationTime: m.PreparationTime,
		Status:          recipe.Status(m.Status),
	}
}

func modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes
}

// UserRecipeToModel converts domain association to GORM model
func UserRecipeToModel(ur *userrecipe.UserRecipe) *UserRecipeModel {
	return &UserRecipeModel{
		ID:       ur.ID,
		UserID:   ur.UserID,
		RecipeID: ur.RecipeID,
		Status:   string(ur.Status),
	}
}

// ModelToUserRecipe converts GORM model to domain association
func ModelToUserRecipe(m *UserRecipeModel) *userrecipe.UserRecipe {
	return &userrecipe.UserRecipe{
		ID:       m.ID,
		UserID:   m.UserID,
		RecipeID: m.RecipeID,
		Status:   recipe.Status(m.Status),
	}
}
