package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates customer with hashed password", func(t *testing.T) {
		user, err := NewUser("ali@example.com", "Ali Hasan", "secret12")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "ali@example.com", user.Email)
		assert.Equal(t, "Ali Hasan", user.Name)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.False(t, user.IsAdmin())
		assert.NotEqual(t, "secret12", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret12"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("Ali@Example.COM", "Ali", "secret12")
		require.NoError(t, err)
		assert.Equal(t, "ali@example.com", user.Email)
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("ali@example.com", "Ali", "secret12")
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Ali", "secret12")
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ali@example.com", "Ali", "12345")
		require.Error(t, err)
	})

	t.Run("rejects short name", func(t *testing.T) {
		_, err := NewUser("ali@example.com", "A", "secret12")
		require.Error(t, err)
	})
}

func TestNewAdmin(t *testing.T) {
	user, err := NewAdmin("admin@example.com", "Store Admin", "secret12")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUserSetPassword(t *testing.T) {
	user, err := NewUser("ali@example.com", "Ali", "secret12")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("newpass1"))
	assert.True(t, user.VerifyPassword("newpass1"))
	assert.False(t, user.VerifyPassword("secret12"))

	require.Error(t, user.SetPassword("short"))
	assert.True(t, user.VerifyPassword("newpass1"))
}

func TestRole(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("owner").IsValid())
}
