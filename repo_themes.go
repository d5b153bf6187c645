package newsroom

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Themes interface {
	repository.Repository[*Theme]

	Save(ctx context.Context, theme *Theme) (*Theme, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Theme, error)
	ListAll(ctx context.Context) ([]*Theme, error)
	UpdateRecord(ctx context.Context, theme *Theme) (*Theme, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type themes struct {
	repository.Repository[*Theme]
	db *bun.DB
}

var (
	_ Themes                        = (*themes)(nil)
	_ repository.Repository[*Theme] = (*themes)(nil)
)

func NewThemesRepository(db *bun.DB) Themes {
	repo := repository.NewRepository[*Theme](db, repository.ModelHandlers[*Theme]{
		NewRecord: func() *Theme { return &Theme{} },
		GetID: func(t *Theme) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Theme, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
		GetIdentifier: func() string {
			return "title"
		},
	})

	return &themes{
		Repository: repo,
		db:         db,
	}
}

func (a *themes) Save(ctx context.Context, theme *Theme) (*Theme, error) {
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}

	record, err := a.Repository.Create(ctx, theme)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return record, nil
}

func (a *themes) GetByUUID(ctx context.Context, id uuid.UUID) (*Theme, error) {
	record := &Theme{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *themes) ListAll(ctx context.Context) ([]*Theme, error) {
	var records []*Theme
	err := a.db.NewSelect().
		Model(&records).
		Order("thm.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *themes) UpdateRecord(ctx context.Context, theme *Theme) (*Theme, error) {
	if _, err := a.GetByUUID(ctx, theme.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	theme.UpdatedAt = &now

	_, err := a.db.NewUpdate().
		Model(theme).
		Column("title", "description", "updated_at").
		Where("?TableAlias.id = ?", theme.ID).
		Exec(ctx)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return a.GetByUUID(ctx, theme.ID)
}

func (a *themes) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Theme)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrThemeNotFound
	}

	return nil
}
