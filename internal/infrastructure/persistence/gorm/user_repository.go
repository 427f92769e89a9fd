package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/recipebox/internal/domain/user"
	"gorm.io/gorm"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := UserToModel(u)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return user.ErrUsernameTaken
		}
		return result.Error
	}

	u.ID = model.ID
	return nil
}

// FindByUsername finds a user by exact username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, result.Error
	}

	return ModelToUser(&model), nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ListUsernames returns all usernames ordered by name
func (r *UserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	var names []string

	result := r.db.WithContext(ctx).Model(&UserModel{}).Order("username").Pluck("username", &names)
	if result.Error != nil {
		return nil, result.Error
	}

	return names, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
