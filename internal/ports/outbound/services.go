package outbound

import (
	"context"
	"fmt"
	"time"

	"github.com/alchemorsel/recipebox/internal/domain/user"
)

// ChatCompletionClient sends a single user-role prompt to a chat-completion endpoint
type ChatCompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UpstreamError is returned when the chat-completion endpoint answers with a non-2xx status.
// Callers relay StatusCode and Body unchanged.
type UpstreamError struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// IssuedToken is a signed bearer token
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(u *user.User) (*IssuedToken, error)
}
