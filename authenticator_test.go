package newsroom_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/newsroom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuther_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a token that resolves back to the created user", func(t *testing.T) {
		repo := newTestRepo(t)
		auther := newTestAuthenticator(t, repo)

		token, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, err := auther.IdentityFromToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username())
		assert.Equal(t, "alice@example.com", identity.Email())

		user, err := repo.Users().GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), identity.ID())
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newTestRepo(t)
		auther := newTestAuthenticator(t, repo)

		_, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = auther.Register(ctx, "someone-else", "alice@example.com", "password123")
		assert.ErrorIs(t, err, newsroom.ErrDuplicateEmail)

		users, err := repo.Users().ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("logs create failures as a rendered message", func(t *testing.T) {
		repo := newTestRepo(t)
		logger := &recordLogger{}
		provider := newsroom.NewUserProvider(repo.Users())
		auther := newsroom.NewAuthenticator(provider, repo.Users(), testConfig{}).WithLogger(logger)

		_, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = auther.Register(ctx, "someone-else", "alice@example.com", "password123")
		require.ErrorIs(t, err, newsroom.ErrDuplicateEmail)

		require.NotEmpty(t, logger.lines)
		for _, line := range logger.lines {
			assert.NotContains(t, line, "%!")
		}
		assert.Contains(t, logger.lines[len(logger.lines)-1], newsroom.ErrDuplicateEmail.Message)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		repo := newTestRepo(t)
		auther := newTestAuthenticator(t, repo)

		_, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = auther.Register(ctx, "alice", "other@example.com", "password123")
		assert.ErrorIs(t, err, newsroom.ErrDuplicateUsername)

		users, err := repo.Users().ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		repo := newTestRepo(t)
		auther := newTestAuthenticator(t, repo)

		tests := []struct {
			name     string
			username string
			email    string
			password string
		}{
			{"empty username", "", "alice@example.com", "password123"},
			{"empty email", "alice", "", "password123"},
			{"malformed email", "alice", "not-an-email", "password123"},
			{"empty password", "alice", "alice@example.com", ""},
			{"short password", "alice", "alice@example.com", "12345"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := auther.Register(ctx, tt.username, tt.email, tt.password)
				require.Error(t, err)

				var richErr *errors.Error
				require.ErrorAs(t, err, &richErr)
				assert.Equal(t, errors.CategoryValidation, richErr.Category)
			})
		}

		users, err := repo.Users().ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()

	repo := newTestRepo(t)
	auther := newTestAuthenticator(t, repo)

	_, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("logs in by email", func(t *testing.T) {
		token, err := auther.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("logs in by username", func(t *testing.T) {
		token, err := auther.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown identifier fail the same way", func(t *testing.T) {
		_, wrongPass := auther.Login(ctx, "alice@example.com", "not-the-password")
		_, unknown := auther.Login(ctx, "nobody@example.com", "password123")

		assert.ErrorIs(t, wrongPass, newsroom.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, newsroom.ErrInvalidCredentials)
		assert.Equal(t, wrongPass.Error(), unknown.Error())
	})

	t.Run("register then login resolve to the same identity", func(t *testing.T) {
		registerToken, err := auther.Register(ctx, "bob", "bob@example.com", "password123")
		require.NoError(t, err)

		loginToken, err := auther.Login(ctx, "bob@example.com", "password123")
		require.NoError(t, err)

		fromRegister, err := auther.IdentityFromToken(ctx, registerToken)
		require.NoError(t, err)

		fromLogin, err := auther.IdentityFromToken(ctx, loginToken)
		require.NoError(t, err)

		assert.Equal(t, fromRegister.ID(), fromLogin.ID())
	})
}

func TestAuther_IdentityFromToken(t *testing.T) {
	ctx := context.Background()

	repo := newTestRepo(t)
	auther := newTestAuthenticator(t, repo)

	token, err := auther.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("resolves a valid token", func(t *testing.T) {
		identity, err := auther.IdentityFromToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", identity.Email())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := auther.IdentityFromToken(ctx, "garbage")
		assert.Error(t, err)
	})

	t.Run("rejects a token whose subject no longer exists", func(t *testing.T) {
		user, err := repo.Users().GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		require.NoError(t, repo.Users().DeleteByID(ctx, user.ID))

		_, err = auther.IdentityFromToken(ctx, token)
		assert.ErrorIs(t, err, newsroom.ErrTokenMalformed)
	})
}
