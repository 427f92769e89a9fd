package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns every recipe in insertion order
func (r *RecipeRepository) List(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel

	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, err
	}

	return modelsToRecipes(models), nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return ModelToRecipe(&model), nil
}

// FindByIDs returns the recipes among ids that exist
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var models []RecipeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, err
	}

	return modelsToRecipes(models), nil
}

// Search matches query as a case-insensitive substring of name or cuisine type
func (r *RecipeRepository) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	var models []RecipeModel

	pattern := "%" + escapeLike(foldCase(query)) + "%"
	result := r.db.WithContext(ctx).
		Where("name_folded LIKE ? ESCAPE '\\' OR cuisine_folded LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("created_at, id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return modelsToRecipes(models), nil
}

// Create stores a new recipe and assigns its ID
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)
	model.ID = ""

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	rec.ID = model.ID
	return nil
}

// Replace overwrites every field of an existing recipe
func (r *RecipeRepository) Replace(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("id = ?", rec.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// UpdateStatus sets only the status column and returns the updated recipe
func (r *RecipeRepository) UpdateStatus(ctx context.Context, id string, status recipe.Status) (*recipe.Recipe, error) {
	var updated *recipe.Recipe

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model RecipeModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return recipe.ErrRecipeNotFound
			}
			return err
		}

		if err := tx.Model(&model).Update("status", string(status)).Error; err != nil {
			return err
		}

		model.Status = string(status)
		updated = ModelToRecipe(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
