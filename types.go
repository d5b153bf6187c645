package newsroom

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated principal
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Authenticator holds methods to deal with registration and authentication
type Authenticator interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, identifier, password string) (string, error)
	IdentityFromToken(ctx context.Context, token string) (Identity, error)
	TokenService() TokenService
}

// TokenService signs and validates stateless bearer credentials
type TokenService interface {
	Issue(identity Identity) (string, error)
	Validate(token string) (AuthClaims, error)
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetAuthScheme() string
}

// ThemeView is a theme annotated with the caller's subscription status
type ThemeView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// CommentView renders a comment with the sender's username resolved
type CommentView struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	ArticleID      uuid.UUID  `json:"article_id"`
	SenderID       uuid.UUID  `json:"sender_id"`
	SenderUsername string     `json:"sender_username"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// ArticleView renders an article with the author username, theme, and
// nested comments denormalized at render time
type ArticleView struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	AuthorUsername string        `json:"author_username"`
	ThemeID        uuid.UUID     `json:"theme_id"`
	ThemeTitle     string        `json:"theme_title"`
	Comments       []CommentView `json:"comments"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] NEWSROOM "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] NEWSROOM "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] NEWSROOM "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
