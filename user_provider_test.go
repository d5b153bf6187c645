package newsroom_test

import (
	"context"
	"testing"

	"github.com/goliatone/newsroom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProvider_FindUserByIdentifier(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	provider := newsroom.NewUserProvider(repo.Users())

	alice := mustRegisterUser(t, repo, "alice", "alice@example.com", "password123")

	t.Run("finds by email", func(t *testing.T) {
		user, err := provider.FindUserByIdentifier(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("finds by username", func(t *testing.T) {
		user, err := provider.FindUserByIdentifier(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("email lookup wins over username", func(t *testing.T) {
		// bob's username is the same string as carol's email
		carol := mustRegisterUser(t, repo, "carol", "shared@example.com", "password123")
		mustRegisterUser(t, repo, "shared@example.com", "bob@example.com", "password123")

		user, err := provider.FindUserByIdentifier(ctx, "shared@example.com")
		require.NoError(t, err)
		assert.Equal(t, carol.ID, user.ID)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := provider.FindUserByIdentifier(ctx, "nobody")
		assert.ErrorIs(t, err, newsroom.ErrUserNotFound)
	})
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	provider := newsroom.NewUserProvider(repo.Users())

	alice := mustRegisterUser(t, repo, "alice", "alice@example.com", "password123")

	t.Run("verifies matching credentials", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, alice.ID.String(), identity.ID())
		assert.Equal(t, "alice", identity.Username())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, newsroom.ErrInvalidCredentials)
	})

	t.Run("unknown identifier is indistinguishable from wrong password", func(t *testing.T) {
		_, unknown := provider.VerifyIdentity(ctx, "nobody@example.com", "password123")
		_, wrongPass := provider.VerifyIdentity(ctx, "alice@example.com", "wrong")

		assert.ErrorIs(t, unknown, newsroom.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongPass, newsroom.ErrInvalidCredentials)
		assert.Equal(t, unknown.Error(), wrongPass.Error())
	})
}
