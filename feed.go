package newsroom

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FeedService aggregates articles from the themes a user follows and renders
// article views with denormalized author and theme data.
type FeedService struct {
	repo   RepositoryManager
	subs   *SubscriptionService
	logger Logger
}

func NewFeedService(repo RepositoryManager, subs *SubscriptionService) *FeedService {
	return &FeedService{
		repo:   repo,
		subs:   subs,
		logger: defLogger{},
	}
}

func (s *FeedService) WithLogger(l Logger) *FeedService {
	s.logger = l
	return s
}

// ArticlePayload carries article create/update input
type ArticlePayload struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	ThemeID uuid.UUID `json:"theme_id"`
}

// Validate will run validation rules
func (r ArticlePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.ThemeID, validation.Required),
	)
}

// CreateArticle publishes an article under an existing theme with the
// resolved caller as author.
func (s *FeedService) CreateArticle(ctx context.Context, payload ArticlePayload, author Identity) (*Article, error) {
	if author == nil {
		return nil, ErrInvalidCredentials
	}

	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid article payload").
			WithCode(errors.CodeBadRequest)
	}

	theme, err := s.repo.Themes().GetByUUID(ctx, payload.ThemeID)
	if err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(author.ID())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "invalid author id")
	}

	article := &Article{
		Title:    payload.Title,
		Content:  payload.Content,
		ThemeID:  theme.ID,
		AuthorID: authorID,
	}

	return s.repo.Articles().Save(ctx, article)
}

// UpdateArticle replaces title, content, and theme of an existing article.
// Ownership is not enforced; authenticated access is the only requirement.
func (s *FeedService) UpdateArticle(ctx context.Context, id uuid.UUID, payload ArticlePayload) (*Article, error) {
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid article payload").
			WithCode(errors.CodeBadRequest)
	}

	if _, err := s.repo.Articles().GetByUUID(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.repo.Themes().GetByUUID(ctx, payload.ThemeID); err != nil {
		return nil, err
	}

	return s.repo.Articles().UpdateRecord(ctx, &Article{
		ID:      id,
		Title:   payload.Title,
		Content: payload.Content,
		ThemeID: payload.ThemeID,
	})
}

// DeleteArticle removes an article and cascades deletion of its comments in
// one transaction.
func (s *FeedService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Articles().GetByUUID(ctx, id); err != nil {
		return err
	}

	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.Articles().DeleteByIDTx(ctx, tx, id)
	})
}

// ArticleByID returns a single article rendered with its full comment list.
func (s *FeedService) ArticleByID(ctx context.Context, id uuid.UUID) (ArticleView, error) {
	article, err := s.repo.Articles().GetByUUID(ctx, id)
	if err != nil {
		return ArticleView{}, err
	}

	return renderArticle(article), nil
}

// ListArticles returns every article rendered with comments.
func (s *FeedService) ListArticles(ctx context.Context) ([]ArticleView, error) {
	articles, err := s.repo.Articles().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return renderArticles(articles), nil
}

// FeedForUser resolves the user's subscriptions to a distinct theme set and
// returns exactly the articles published under those themes.
func (s *FeedService) FeedForUser(ctx context.Context, userID uuid.UUID) ([]ArticleView, error) {
	if _, err := s.repo.Users().GetByUUID(ctx, userID); err != nil {
		return nil, err
	}

	themeIDs, err := s.subs.SubscribedThemeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles, err := s.repo.Articles().ListByThemes(ctx, themeIDs)
	if err != nil {
		return nil, err
	}

	return renderArticles(articles), nil
}

func renderArticles(articles []*Article) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, renderArticle(article))
	}
	return views
}

func renderArticle(article *Article) ArticleView {
	view := ArticleView{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		ThemeID:   article.ThemeID,
		Comments:  renderComments(article.Comments),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}

	if article.Author != nil {
		view.AuthorUsername = article.Author.Username
	}

	if article.Theme != nil {
		view.ThemeTitle = article.Theme.Title
	}

	return view
}

func renderComments(comments []*Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		view := CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			ArticleID: comment.ArticleID,
			SenderID:  comment.SenderID,
			CreatedAt: comment.CreatedAt,
		}
		if comment.Sender != nil {
			view.SenderUsername = comment.Sender.Username
		}
		views = append(views, view)
	}
	return views
}
