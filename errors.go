package newsroom

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeDuplicateEmail     = "duplicate_email"
	TextCodeDuplicateUsername  = "duplicate_username"
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeTokenMalformed     = "token_malformed"
	TextCodeTokenExpired       = "token_expired"
	TextCodeUserNotFound       = "user_not_found"
	TextCodeThemeNotFound      = "theme_not_found"
	TextCodeArticleNotFound    = "article_not_found"
	TextCodeCommentNotFound    = "comment_not_found"
	TextCodeDuplicateTheme     = "duplicate_theme"
	TextCodeAlreadySubscribed  = "already_subscribed"
	TextCodeNotSubscribed      = "not_subscribed"
)

// ErrDuplicateEmail is returned when a user with the email already exists.
var ErrDuplicateEmail = errors.New("a user with this email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrDuplicateUsername is returned when a user with the username already exists.
var ErrDuplicateUsername = errors.New("a user with this username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials is the single undifferentiated login failure. It
// covers both unknown identifiers and wrong passwords so a caller cannot
// probe which identifiers exist.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tampered, truncated, or wrongly signed tokens.
var ErrTokenMalformed = errors.New("invalid or malformed token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token is past its expiry claim.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned when a user lookup comes back empty.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrThemeNotFound is returned when a theme lookup comes back empty.
var ErrThemeNotFound = errors.New("theme not found", errors.CategoryNotFound).
	WithTextCode(TextCodeThemeNotFound).
	WithCode(errors.CodeNotFound)

// ErrArticleNotFound is returned when an article lookup comes back empty.
var ErrArticleNotFound = errors.New("article not found", errors.CategoryNotFound).
	WithTextCode(TextCodeArticleNotFound).
	WithCode(errors.CodeNotFound)

// ErrCommentNotFound is returned when a comment lookup comes back empty.
var ErrCommentNotFound = errors.New("comment not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCommentNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateTheme is returned when a theme with the title already exists.
var ErrDuplicateTheme = errors.New("a theme with this title already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateTheme).
	WithCode(errors.CodeConflict)

// ErrAlreadySubscribed is returned when a (user, theme) subscription already exists.
var ErrAlreadySubscribed = errors.New("user is already subscribed to this theme", errors.CategoryConflict).
	WithTextCode(TextCodeAlreadySubscribed).
	WithCode(errors.CodeConflict)

// ErrNotSubscribed is returned when unsubscribing without an existing subscription.
var ErrNotSubscribed = errors.New("user is not subscribed to this theme", errors.CategoryConflict).
	WithTextCode(TextCodeNotSubscribed).
	WithCode(errors.CodeBadRequest)

// mapUniqueViolation converts a store-level unique constraint failure into
// the matching domain conflict. The constraint is the arbiter for concurrent
// writers: two racing inserts both pass the pre-check but only one row lands,
// and the loser surfaces here.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "duplicate key value") {
		return err
	}

	switch {
	case strings.Contains(msg, "users.email"), strings.Contains(msg, "users_email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "users.username"), strings.Contains(msg, "users_username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "themes.title"), strings.Contains(msg, "themes_title"):
		return ErrDuplicateTheme
	case strings.Contains(msg, "subscriptions"):
		return ErrAlreadySubscribed
	}

	return errors.Wrap(err, errors.CategoryConflict, "unique constraint violation").
		WithCode(errors.CodeConflict)
}

// IsUniqueViolation reports whether err is a store-level unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}
