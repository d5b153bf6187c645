package newsroom

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	UpdateRecord(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// Register inserts a new user. The unique indexes on email and username are
// the authority for duplicates: a violation surfaces as the matching domain
// conflict even when two racing requests both passed an earlier existence
// check.
func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	record, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.getByColumn(ctx, "email", email)
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.getByColumn(ctx, "username", username)
}

func (a *users) getByColumn(ctx context.Context, column, value string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *users) GetByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return record, nil
}

func (a *users) ListAll(ctx context.Context) ([]*User, error) {
	var records []*User
	if err := a.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecord replaces the mutable columns of an existing user. Unique
// indexes still arbitrate email and username collisions.
func (a *users) UpdateRecord(ctx context.Context, user *User) (*User, error) {
	if _, err := a.GetByUUID(ctx, user.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	user.UpdatedAt = &now

	_, err := a.db.NewUpdate().
		Model(user).
		Column("username", "email", "updated_at").
		Where("?TableAlias.id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return a.GetByUUID(ctx, user.ID)
}

func (a *users) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}
