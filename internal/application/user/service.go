// Package user provides the application layer for account management
package user

import (
	"context"
	"errors"

	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"go.uber.org/zap"
)

// DefaultAdminPassword is used by EnsureAdmin when no password is configured
const DefaultAdminPassword = "Admin123!"

const invalidCredentialsMessage = "Invalid username or password."

// Service implements inbound.AccountService
type Service struct {
	users         outbound.UserRepository
	userRecipes   outbound.UserRecipeRepository
	hasher        outbound.PasswordHasher
	tokens        outbound.TokenIssuer
	adminPassword string
	logger        *zap.Logger
}

// NewService creates a new account service
func NewService(
	users outbound.UserRepository,
	userRecipes outbound.UserRecipeRepository,
	hasher outbound.PasswordHasher,
	tokens outbound.TokenIssuer,
	adminPassword string,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:         users,
		userRecipes:   userRecipes,
		hasher:        hasher,
		tokens:        tokens,
		adminPassword: adminPassword,
		logger:        logger.Named("account-service"),
	}
}

// Login verifies the credential and issues a bearer token
func (s *Service) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.LoginResult, error) {
	u, err := s.users.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("Login attempt for unknown user", zap.String("username", cmd.Username))
			return nil, apperrors.NewInvalidCredentialsError(invalidCredentialsMessage)
		}
		return nil, apperrors.NewDatabaseError("load user", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", cmd.Username))
		return nil, apperrors.NewInvalidCredentialsError(invalidCredentialsMessage)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to issue token")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)

	return &inbound.LoginResult{
		Username:  u.Username,
		Role:      string(u.Role),
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Register creates a credential with the User role
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) error {
	_, err := s.users.FindByUsername(ctx, cmd.Username)
	switch {
	case err == nil:
		return apperrors.NewUsernameAlreadyExistsError(cmd.Username)
	case !errors.Is(err, user.ErrUserNotFound):
		return apperrors.NewDatabaseError("load user", err)
	}

	if _, err := s.create(ctx, cmd.Username, cmd.Password, cmd.Email, user.RoleUser); err != nil {
		return err
	}
	return nil
}

// DeleteUser removes a credential and every association it owns
func (s *Service) DeleteUser(ctx context.Context, username string) error {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(username)
		}
		return apperrors.NewDatabaseError("load user", err)
	}

	if err := s.users.Delete(ctx, u.ID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(username)
		}
		return apperrors.NewDatabaseError("delete user", err)
	}

	removed, err := s.userRecipes.DeleteByUser(ctx, u.ID)
	if err != nil {
		s.logger.Error("Failed to delete user associations",
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("User deleted",
		zap.String("username", username),
		zap.Int64("associations_removed", removed),
	)
	return nil
}

// ListUsernames returns every stored username
func (s *Service) ListUsernames(ctx context.Context) ([]string, error) {
	names, err := s.users.ListUsernames(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list users", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// EnsureAdmin creates the admin credential if it does not exist
func (s *Service) EnsureAdmin(ctx context.Context) (bool, error) {
	existing, err := s.users.FindByUsername(ctx, user.AdminUsername)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn("Bootstrap account exists without the Admin role",
				zap.String("username", existing.Username),
				zap.String("role", string(existing.Role)),
			)
		}
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, apperrors.NewDatabaseError("load admin", err)
	}

	password := s.adminPassword
	if password == "" || password == DefaultAdminPassword {
		password = DefaultAdminPassword
		s.logger.Warn("Seeding admin account with the default password; change auth.admin_password")
	}

	if _, err := s.create(ctx, user.AdminUsername, password, "", user.RoleAdmin); err != nil {
		if apperrors.Is(err, apperrors.CodeUsernameAlreadyExists) {
			// Another instance seeded it first
			return false, nil
		}
		return false, err
	}

	s.logger.Info("Admin account created", zap.String("username", user.AdminUsername))
	return true, nil
}

func (s *Service) create(ctx context.Context, username, password, email string, role user.Role) (*user.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to hash password")
	}

	u, err := user.NewUser(username, hash, email, role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, apperrors.NewUsernameAlreadyExistsError(username)
		}
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", string(role)),
	)
	return u, nil
}
