package newsroom

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Articles interface {
	repository.Repository[*Article]

	Save(ctx context.Context, article *Article) (*Article, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Article, error)
	ListAll(ctx context.Context) ([]*Article, error)
	ListByThemes(ctx context.Context, themeIDs []uuid.UUID) ([]*Article, error)
	UpdateRecord(ctx context.Context, article *Article) (*Article, error)
	DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type articles struct {
	repository.Repository[*Article]
	db *bun.DB
}

var (
	_ Articles                        = (*articles)(nil)
	_ repository.Repository[*Article] = (*articles)(nil)
)

func NewArticlesRepository(db *bun.DB) Articles {
	repo := repository.NewRepository[*Article](db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &articles{
		Repository: repo,
		db:         db,
	}
}

func (a *articles) Save(ctx context.Context, article *Article) (*Article, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}

	return a.Repository.Create(ctx, article)
}

// GetByUUID loads an article with its theme, author, and comment thread.
// Comment senders are loaded too so views can denormalize usernames without
// extra queries.
func (a *articles) GetByUUID(ctx context.Context, id uuid.UUID) (*Article, error) {
	record := &Article{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Theme").
		Relation("Author").
		Relation("Comments").
		Relation("Comments.Sender").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *articles) ListAll(ctx context.Context) ([]*Article, error) {
	var records []*Article
	err := a.db.NewSelect().
		Model(&records).
		Relation("Theme").
		Relation("Author").
		Relation("Comments").
		Relation("Comments.Sender").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByThemes fetches every article whose theme is in the given set.
// Callers pass the distinct theme ids from a user's subscriptions.
func (a *articles) ListByThemes(ctx context.Context, themeIDs []uuid.UUID) ([]*Article, error) {
	if len(themeIDs) == 0 {
		return []*Article{}, nil
	}

	var records []*Article
	err := a.db.NewSelect().
		Model(&records).
		Relation("Theme").
		Relation("Author").
		Relation("Comments").
		Relation("Comments.Sender").
		Where("?TableAlias.theme_id IN (?)", bun.In(themeIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *articles) UpdateRecord(ctx context.Context, article *Article) (*Article, error) {
	now := time.Now()
	article.UpdatedAt = &now

	_, err := a.db.NewUpdate().
		Model(article).
		Column("title", "content", "theme_id", "updated_at").
		Where("?TableAlias.id = ?", article.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return a.GetByUUID(ctx, article.ID)
}

// DeleteByIDTx removes an article and its comments in the same transaction
// so no orphaned comment can persist.
func (a *articles) DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*Comment)(nil)).
		Where("?TableAlias.article_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	res, err := tx.NewDelete().
		Model((*Article)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrArticleNotFound
	}

	return nil
}
