package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alchemorsel/recipebox/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipebox/internal/infrastructure/security"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// TokenValidator validates a raw bearer token
type TokenValidator interface {
	Validate(token string) (*security.Principal, error)
}

// Authenticate requires a valid bearer token and stores the caller in the request context
func Authenticate(tokens TokenValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Authorization header required"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Invalid authorization header format"))
				return
			}

			principal, err := tokens.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Debug("Rejected bearer token", zap.Error(err))
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequirePermission rejects authenticated callers whose role lacks action on resource.
// It must run after Authenticate.
func RequirePermission(rbac *security.RBAC, resource, action string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Authentication required"))
				return
			}

			if !rbac.HasPermission(principal.Role, resource, action) {
				logger.Warn("Forbidden request",
					zap.String("user_id", principal.UserID),
					zap.String("role", string(principal.Role)),
					zap.String("resource", resource),
					zap.String("action", action),
				)
				response.Error(w, r, logger, apperrors.NewForbiddenError("Insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal returns a context carrying p
func WithPrincipal(ctx context.Context, p *security.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated caller from ctx
func GetPrincipal(ctx context.Context) (*security.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*security.Principal)
	return p, ok && p != nil
}

// GetUserIDFromContext extracts the caller's user id from ctx
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	p, ok := GetPrincipal(ctx)
	if !ok || p.UserID == "" {
		return "", false
	}
	return p.UserID, true
}
