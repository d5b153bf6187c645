package newsroom_test

import (
	"context"
	"testing"

	"github.com/goliatone/newsroom"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	service := newsroom.NewCommentService(repo)

	bob := mustRegisterUser(t, repo, "bob", "bob@example.com", "password123")
	golang := mustCreateTheme(t, repo, "Go")
	article := mustCreateArticle(t, repo, golang, bob, "Generics in practice")

	t.Run("attaches a comment", func(t *testing.T) {
		comment, err := service.AddComment(ctx, newsroom.CommentPayload{
			Content:   "nice",
			ArticleID: article.ID,
		}, newsroom.NewIdentity(bob))
		require.NoError(t, err)
		assert.Equal(t, article.ID, comment.ArticleID)
		assert.Equal(t, bob.ID, comment.SenderID)
	})

	t.Run("unknown article", func(t *testing.T) {
		_, err := service.AddComment(ctx, newsroom.CommentPayload{
			Content:   "nice",
			ArticleID: uuid.New(),
		}, newsroom.NewIdentity(bob))
		assert.ErrorIs(t, err, newsroom.ErrArticleNotFound)
	})

	t.Run("nil sender", func(t *testing.T) {
		_, err := service.AddComment(ctx, newsroom.CommentPayload{
			Content:   "nice",
			ArticleID: article.ID,
		}, nil)
		assert.ErrorIs(t, err, newsroom.ErrInvalidCredentials)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := service.AddComment(ctx, newsroom.CommentPayload{
			ArticleID: article.ID,
		}, newsroom.NewIdentity(bob))
		assert.Error(t, err)
	})
}

func TestCommentService_ListByArticle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	service := newsroom.NewCommentService(repo)

	bob := mustRegisterUser(t, repo, "bob", "bob@example.com", "password123")
	carol := mustRegisterUser(t, repo, "carol", "carol@example.com", "password123")
	golang := mustCreateTheme(t, repo, "Go")
	article := mustCreateArticle(t, repo, golang, bob, "Generics in practice")

	_, err := service.AddComment(ctx, newsroom.CommentPayload{Content: "first", ArticleID: article.ID}, newsroom.NewIdentity(bob))
	require.NoError(t, err)
	_, err = service.AddComment(ctx, newsroom.CommentPayload{Content: "second", ArticleID: article.ID}, newsroom.NewIdentity(carol))
	require.NoError(t, err)

	t.Run("returns the thread with sender usernames", func(t *testing.T) {
		views, err := service.ListByArticle(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)

		senders := map[string]string{}
		for _, view := range views {
			senders[view.Content] = view.SenderUsername
		}
		assert.Equal(t, "bob", senders["first"])
		assert.Equal(t, "carol", senders["second"])
	})

	t.Run("unknown article", func(t *testing.T) {
		_, err := service.ListByArticle(ctx, uuid.New())
		assert.ErrorIs(t, err, newsroom.ErrArticleNotFound)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	service := newsroom.NewCommentService(repo)

	bob := mustRegisterUser(t, repo, "bob", "bob@example.com", "password123")
	golang := mustCreateTheme(t, repo, "Go")
	article := mustCreateArticle(t, repo, golang, bob, "Generics in practice")

	comment, err := service.AddComment(ctx, newsroom.CommentPayload{
		Content:   "to be removed",
		ArticleID: article.ID,
	}, newsroom.NewIdentity(bob))
	require.NoError(t, err)

	t.Run("removes the comment", func(t *testing.T) {
		require.NoError(t, service.DeleteComment(ctx, comment.ID))

		_, err := repo.Comments().GetByUUID(ctx, comment.ID)
		assert.ErrorIs(t, err, newsroom.ErrCommentNotFound)
	})

	t.Run("unknown comment", func(t *testing.T) {
		err := service.DeleteComment(ctx, uuid.New())
		assert.ErrorIs(t, err, newsroom.ErrCommentNotFound)
	})
}
