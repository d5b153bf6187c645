package newsroom

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// identity adapts a User record to the Identity interface so services never
// see the password hash.
type identity struct {
	id       string
	username string
	email    string
}

func (i identity) ID() string       { return i.id }
func (i identity) Username() string { return i.username }
func (i identity) Email() string    { return i.email }

// NewIdentity builds an Identity from a user record
func NewIdentity(u *User) Identity {
	if u == nil {
		return nil
	}
	return identity{
		id:       u.ID.String(),
		username: u.Username,
		email:    u.Email,
	}
}

// Theme is a topical category that groups articles and can be subscribed to
type Theme struct {
	bun.BaseModel `bun:"table:themes,alias:thm"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull,unique" json:"title,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Article belongs to exactly one theme and one author
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:art"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	ThemeID       uuid.UUID  `bun:"theme_id,notnull,type:uuid" json:"theme_id,omitempty"`
	AuthorID      uuid.UUID  `bun:"author_id,notnull,type:uuid" json:"author_id,omitempty"`
	Theme         *Theme     `bun:"rel:belongs-to,join:theme_id=id" json:"theme,omitempty"`
	Author        *User      `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Comments      []*Comment `bun:"rel:has-many,join:id=article_id" json:"comments,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Comment belongs to exactly one article and one sender
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	ArticleID     uuid.UUID  `bun:"article_id,notnull,type:uuid" json:"article_id,omitempty"`
	SenderID      uuid.UUID  `bun:"sender_id,notnull,type:uuid" json:"sender_id,omitempty"`
	Article       *Article   `bun:"rel:belongs-to,join:article_id=id" json:"article,omitempty"`
	Sender        *User      `bun:"rel:belongs-to,join:sender_id=id" json:"sender,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Subscription joins a user to a theme. The composite unique group keeps at
// most one active row per (user, theme) pair regardless of request ordering.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:sub"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid,unique:user_theme" json:"user_id,omitempty"`
	ThemeID       uuid.UUID  `bun:"theme_id,notnull,type:uuid,unique:user_theme" json:"theme_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Theme         *Theme     `bun:"rel:belongs-to,join:theme_id=id" json:"theme,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
