package newsroom

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Subscriptions interface {
	repository.Repository[*Subscription]

	Save(ctx context.Context, sub *Subscription) (*Subscription, error)
	GetByUserAndTheme(ctx context.Context, userID, themeID uuid.UUID) (*Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Subscription, error)
	DeleteByUserAndTheme(ctx context.Context, userID, themeID uuid.UUID) error
}

type subscriptions struct {
	repository.Repository[*Subscription]
	db *bun.DB
}

var _ Subscriptions = (*subscriptions)(nil)

func NewSubscriptionsRepository(db *bun.DB) Subscriptions {
	repo := repository.NewRepository[*Subscription](db, repository.ModelHandlers[*Subscription]{
		NewRecord: func() *Subscription { return &Subscription{} },
		GetID: func(s *Subscription) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Subscription, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &subscriptions{
		Repository: repo,
		db:         db,
	}
}

// Save inserts a subscription row. The composite unique index on
// (user_id, theme_id) turns the second of two concurrent identical
// subscribes into ErrAlreadySubscribed instead of a duplicate row.
func (a *subscriptions) Save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	record, err := a.Repository.Create(ctx, sub)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return record, nil
}

func (a *subscriptions) GetByUserAndTheme(ctx context.Context, userID, themeID uuid.UUID) (*Subscription, error) {
	record := &Subscription{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.theme_id = ?", themeID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrNotSubscribed
		}
		return nil, err
	}

	return record, nil
}

// ListByUser returns the user's subscriptions with themes preloaded.
func (a *subscriptions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Subscription, error) {
	var records []*Subscription
	err := a.db.NewSelect().
		Model(&records).
		Relation("Theme").
		Where("?TableAlias.user_id = ?", userID).
		Order("sub.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *subscriptions) DeleteByUserAndTheme(ctx context.Context, userID, themeID uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Subscription)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.theme_id = ?", themeID).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotSubscribed
	}

	return nil
}
