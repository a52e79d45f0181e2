package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("register user", func(t *testing.T) {
		f := newFixture(t)
		user, err := f.userSvc.RegisterUser(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.UserName)
		assert.Equal(t, testStart, user.CreatedAt)

		stored, err := f.users.GetByUserName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", stored.Email)
	})

	t.Run("email is not validated", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.userSvc.RegisterUser(ctx, "alice", "no email here")
		assert.NoError(t, err)
	})

	t.Run("duplicate user", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice")

		_, err := f.userSvc.RegisterUser(ctx, "alice", "other@example.com")
		assert.ErrorIs(t, err, ErrDuplicateUser)
		assert.Contains(t, err.Error(), "'alice'")

		n, err := f.users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		stored, err := f.users.GetByUserName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", stored.Email)
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice")
		_, err := f.userSvc.RegisterUser(ctx, "Alice", "a@example.com")
		assert.NoError(t, err)
	})
}
