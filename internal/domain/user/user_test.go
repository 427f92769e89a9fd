package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" alice ", "hash", " alice@example.com ", RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.IsAdmin())

	admin, err := NewUser(AdminUsername, "hash", "", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "hash", "", RoleUser)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = NewUser("bob", "", "", RoleUser)
	assert.ErrorIs(t, err, ErrPasswordHashRequired)

	_, err = NewUser("bob", "hash", "", Role("Chef"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}
