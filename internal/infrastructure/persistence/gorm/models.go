// Package gorm provides GORM model definitions and repositories for the SQL drivers
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255)"`
	Role         string `gorm:"type:varchar(20);not null;default:'User'"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID              string      `gorm:"type:char(36);primaryKey"`
	Name            string      `gorm:"type:varchar(255);not null;index"`
	Ingredients     StringSlice `gorm:"type:text"`
	Instructions    string      `gorm:"type:text"`
	CuisineType     string      `gorm:"type:varchar(100);index"`
	PreparationTime int         `gorm:"not null;default:0"`
	Status          string      `gorm:"type:varchar(20)"`
	CreatedAt       time.Time   `gorm:"index"`

	// Lowercased copies for search; SQLite's LOWER only folds ASCII
	NameFolded    string `gorm:"type:varchar(255);not null;default:''"`
	CuisineFolded string `gorm:"type:varchar(100);not null;default:''"`
}

// UserRecipeModel links a user to a recipe with a personal status
type UserRecipeModel struct {
	ID       string `gorm:"type:char(36);primaryKey"`
	UserID   string `gorm:"type:char(36);not null;uniqueIndex:idx_user_recipe"`
	RecipeID string `gorm:"type:char(36);not null;uniqueIndex:idx_user_recipe;index"`
	Status   string `gorm:"type:varchar(20);not null"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BeforeCreate hooks assign UUIDs

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (ur *UserRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == "" {
		ur.ID = uuid.New().String()
	}
	return nil
}

// Table names

func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (UserRecipeModel) TableName() string {
	return "user_recipes"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{&UserModel{}, &RecipeModel{}, &UserRecipeModel{}}
}
