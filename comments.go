package newsroom

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// CommentService manages comments attached to articles.
type CommentService struct {
	repo   RepositoryManager
	logger Logger
}

func NewCommentService(repo RepositoryManager) *CommentService {
	return &CommentService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *CommentService) WithLogger(l Logger) *CommentService {
	s.logger = l
	return s
}

// CommentPayload carries comment creation input
type CommentPayload struct {
	Content   string    `json:"content"`
	ArticleID uuid.UUID `json:"article_id"`
}

// Validate will run validation rules
func (r CommentPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.ArticleID, validation.Required),
	)
}

// AddComment attaches a comment to an existing article with the resolved
// caller as sender.
func (s *CommentService) AddComment(ctx context.Context, payload CommentPayload, sender Identity) (*Comment, error) {
	if sender == nil {
		return nil, ErrInvalidCredentials
	}

	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid comment payload").
			WithCode(errors.CodeBadRequest)
	}

	if _, err := s.repo.Articles().GetByUUID(ctx, payload.ArticleID); err != nil {
		return nil, err
	}

	senderID, err := uuid.Parse(sender.ID())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "invalid sender id")
	}

	if _, err := s.repo.Users().GetByUUID(ctx, senderID); err != nil {
		return nil, err
	}

	return s.repo.Comments().Save(ctx, &Comment{
		Content:   payload.Content,
		ArticleID: payload.ArticleID,
		SenderID:  senderID,
	})
}

// ListByArticle returns the comments of an article oldest first, rendered
// with sender usernames.
func (s *CommentService) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]CommentView, error) {
	if _, err := s.repo.Articles().GetByUUID(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comments().ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return renderComments(comments), nil
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Comments().GetByUUID(ctx, id); err != nil {
		return err
	}

	return s.repo.Comments().DeleteByID(ctx, id)
}
