package newsroom

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Themes() Themes
	Articles() Articles
	Comments() Comments
	Subscriptions() Subscriptions

	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db            *bun.DB
	users         Users
	themes        Themes
	articles      Articles
	comments      Comments
	subscriptions Subscriptions
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:            db,
		users:         NewUsersRepository(db),
		themes:        NewThemesRepository(db),
		articles:      NewArticlesRepository(db),
		comments:      NewCommentsRepository(db),
		subscriptions: NewSubscriptionsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.themes == nil {
		return errors.New("repository themes should be initialized")
	}

	if m.articles == nil {
		return errors.New("repository articles should be initialized")
	}

	if m.comments == nil {
		return errors.New("repository comments should be initialized")
	}

	if m.subscriptions == nil {
		return errors.New("repository subscriptions should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users                 { return m.users }
func (m mngr) Themes() Themes               { return m.themes }
func (m mngr) Articles() Articles           { return m.articles }
func (m mngr) Comments() Comments           { return m.comments }
func (m mngr) Subscriptions() Subscriptions { return m.subscriptions }
