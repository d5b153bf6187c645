package newsroom

import (
	"context"

	"github.com/uptrace/bun"
)

// CreateSchema creates the tables for every model. Unique indexes on
// users.email, users.username, themes.title, and the (user_id, theme_id)
// pair come from the model tags and back the conflict mapping in errors.go.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Theme)(nil),
		(*Article)(nil),
		(*Comment)(nil),
		(*Subscription)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}
