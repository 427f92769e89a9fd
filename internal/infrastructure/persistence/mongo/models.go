// Package mongo provides MongoDB-backed repositories, the default store
package mongo

import (
	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	UsersCollection       = "users"
	RecipesCollection     = "recipes"
	UserRecipesCollection = "userrecipes"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
	Email        string             `bson:"email,omitempty"`
	Role         string             `bson:"role"`
}

type recipeDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Ingredients     []string           `bson:"ingredients"`
	Instructions    string             `bson:"instructions"`
	CuisineType     string             `bson:"cuisineType"`
	PreparationTime int                `bson:"preparationTime"`
	Status          string             `bson:"status"`
}

type userRecipeDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   primitive.ObjectID `bson:"userId"`
	RecipeID primitive.ObjectID `bson:"recipeId"`
	Status   string             `bson:"status"`
}

func (d *userDocument) toDomain() *user.User {
	return &user.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Email:        d.Email,
		Role:         user.Role(d.Role),
	}
}

func newRecipeDocument(r *recipe.Recipe) recipeDocument {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return recipeDocument{
		Name:            r.Name,
		Ingredients:     ingredients,
		Instructions:    r.Instructions,
		CuisineType:     r.CuisineType,
		PreparationTime: r.PreparationTime,
		Status:          string(r.Status),
	}
}

func (d *recipeDocument) toDomain() *recipe.Recipe {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &recipe.Recipe{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Ingredients:     ingredients,
		Instructions:    d.Instructions,
		CuisineType:     d.CuisineType,
		PreparationTime: d.PreparationTime,
		Status:          recipe.Status(d.Status),
	}
}

func (d *userRecipeDocument) toDomain() *userrecipe.UserRecipe {
	return &userrecipe.UserRecipe{
		ID:       d.ID.Hex(),
		UserID:   d.UserID.Hex(),
		RecipeID: d.RecipeID.Hex(),
		Status:   recipe.Status(d.Status),
	}
}
