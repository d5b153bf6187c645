package newsroom

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Comments interface {
	repository.Repository[*Comment]

	Save(ctx context.Context, comment *Comment) (*Comment, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type comments struct {
	repository.Repository[*Comment]
	db *bun.DB
}

var _ Comments = (*comments)(nil)

func NewCommentsRepository(db *bun.DB) Comments {
	repo := repository.NewRepository[*Comment](db, repository.ModelHandlers[*Comment]{
		NewRecord: func() *Comment { return &Comment{} },
		GetID: func(c *Comment) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Comment, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &comments{
		Repository: repo,
		db:         db,
	}
}

func (a *comments) Save(ctx context.Context, comment *Comment) (*Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	return a.Repository.Create(ctx, comment)
}

func (a *comments) GetByUUID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	record := &Comment{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Sender").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *comments) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error) {
	var records []*Comment
	err := a.db.NewSelect().
		Model(&records).
		Relation("Sender").
		Where("?TableAlias.article_id = ?", articleID).
		Order("cmt.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *comments) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Comment)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCommentNotFound
	}

	return nil
}
