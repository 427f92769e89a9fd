package security

import (
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"go.uber.org/zap"
)

// Resources guarded by RBAC
const (
	ResourceAccounts    = "accounts"
	ResourceUserRecipes = "userrecipes"
)

// Actions
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAsk    = "ask"
)

// Permission grants actions on a resource. "*" matches any action.
type Permission struct {
	Resource string
	Actions  []string
}

// RBAC maps roles to permissions
type RBAC struct {
	logger *zap.Logger
	roles  map[user.Role][]Permission
}

// NewRBAC creates the role table used by the API
func NewRBAC(logger *zap.Logger) *RBAC {
	return &RBAC{
		logger: logger.Named("rbac"),
		roles: map[user.Role][]Permission{
			user.RoleUser: {
				{Resource: ResourceUserRecipes, Actions: []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionAsk}},
			},
			user.RoleAdmin: {
				{Resource: ResourceAccounts, Actions: []string{"*"}},
				{Resource: ResourceUserRecipes, Actions: []string{"*"}},
			},
		},
	}
}

// HasPermission reports whether role may perform action on resource
func (r *RBAC) HasPermission(role user.Role, resource, action string) bool {
	for _, permission := range r.roles[role] {
		if permission.Resource != resource {
			continue
		}
		for _, allowed := range permission.Actions {
			if allowed == "*" || allowed == action {
				return true
			}
		}
	}

	r.logger.Debug("Permission denied",
		zap.String("role", string(role)),
		zap.String("resource", resource),
		zap.String("action", action),
	)
	return false
}
