package gorm

import (
	"context"
	"errors"

	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRecipeRepository implements the association repository using GORM
type UserRecipeRepository struct {
	db *gorm.DB
}

// NewUserRecipeRepository creates a new association repository
func NewUserRecipeRepository(db *gorm.DB) *UserRecipeRepository {
	return &UserRecipeRepository{db: db}
}

// Upsert inserts the association or overwrites the status of the existing (user, recipe) row
func (r *UserRecipeRepository) Upsert(ctx context.Context, ur *userrecipe.UserRecipe) error {
	model := UserRecipeToModel(ur)
	model.ID = ""

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(model)
	if result.Error != nil {
		return result.Error
	}

	stored, err := r.Find(ctx, ur.UserID, ur.RecipeID)
	if err != nil {
		return err
	}

	ur.ID = stored.ID
	return nil
}

// Find returns the association for (userID, recipeID)
func (r *UserRecipeRepository) Find(ctx context.Context, userID, recipeID string) (*userrecipe.UserRecipe, error) {
	var model UserRecipeModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ? AND recipe_id = ?", userID, recipeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, userrecipe.ErrUserRecipeNotFound
		}
		return nil, result.Error
	}

	return ModelToUserRecipe(&model), nil
}

// List returns the associations matching filter
func (r *UserRecipeRepository) List(ctx context.Context, filter userrecipe.Filter) ([]*userrecipe.UserRecipe, error) {
	query := r.db.WithContext(ctx).Model(&UserRecipeModel{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var models []UserRecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	associations := make([]*userrecipe.UserRecipe, 0, len(models))
	for i := range models {
		associations = append(associations, ModelToUserRecipe(&models[i]))
	}
	return associations, nil
}

// Delete removes the association for (userID, recipeID)
func (r *UserRecipeRepository) Delete(ctx context.Context, userID, recipeID string) error {
	result := r.db.WithContext(ctx).Delete(&UserRecipeModel{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return userrecipe.ErrUserRecipeNotFound
	}

	return nil
}

// DeleteByRecipe removes every association referencing recipeID
func (r *UserRecipeRepository) DeleteByRecipe(ctx context.Context, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&UserRecipeModel{}, "recipe_id = ?", recipeID)
	return result.RowsAffected, result.Error
}

// DeleteByUser removes every association owned by userID
func (r *UserRecipeRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&UserRecipeModel{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}
