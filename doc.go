// Package newsroom is a content-sharing backend: users register, author
// articles under topical themes, comment on articles, and subscribe to themes
// to curate a personalized feed.
//
// Authentication:
//   - Auther coordinates registration and login. Registration creates the user
//     and immediately authenticates the same credentials, so a register call
//     always yields a usable bearer token. Login accepts either email or
//     username as identifier; unknown identifiers and wrong passwords collapse
//     into one undifferentiated failure.
//   - TokenService issues and validates HS256-signed stateless tokens whose
//     subject is the user's email. The signing key comes from the environment
//     and its absence is a fatal startup error.
//
// Content model:
//   - Themes group articles and can be subscribed to. The Subscription ledger
//     keeps at most one row per (user, theme) pair; the composite unique index
//     settles concurrent duplicate subscribes.
//   - FeedService assembles a user's feed from the articles of their
//     subscribed themes, rendering author usernames, theme titles, and nested
//     comment threads at read time. Deleting an article removes its comments
//     in the same transaction.
//
// HTTP:
//   - HTTPController exposes the JSON API over fiber. Handlers return domain
//     errors; DefaultErrorHandler translates error categories into status
//     codes at the boundary. Protected routes use the middleware/jwtware
//     bearer middleware.
package newsroom
