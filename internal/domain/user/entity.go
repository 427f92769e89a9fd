// Package user defines the user domain entity
package user

import (
	"errors"
	"strings"
)

// AdminUsername is the account created by the bootstrap step.
const AdminUsername = "admin"

// Role represents the role of a user
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Domain errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordHashRequired = errors.New("password hash is required")
	ErrInvalidRole          = errors.New("invalid role")
)

// User represents a stored credential
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Role         Role
}

// NewUser creates a user from an already hashed password
func NewUser(username, passwordHash, email string, role Role) (*User, error) {
	u := &User{
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Email:        strings.TrimSpace(email),
		Role:         role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the entity invariants
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrUsernameRequired
	}
	if u.PasswordHash == "" {
		return ErrPasswordHashRequired
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin reports whether the user holds the Admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}
