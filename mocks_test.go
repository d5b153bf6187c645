package newsroom_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/goliatone/newsroom"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	// keep password hashing fast under test
	newsroom.BcryptCost = bcrypt.MinCost
}

// TestIdentity is a plain Identity for tests
type TestIdentity struct {
	id       string
	username string
	email    string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }

// MockLogger implements newsroom.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// recordLogger renders every call through fmt, the way defLogger does,
// and keeps the result for assertions.
type recordLogger struct {
	lines []string
}

func (r *recordLogger) record(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordLogger) Debug(format string, args ...any) { r.record(format, args...) }
func (r *recordLogger) Info(format string, args ...any)  { r.record(format, args...) }
func (r *recordLogger) Error(format string, args ...any) { r.record(format, args...) }

// testConfig implements newsroom.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key"
	}
	return c.signingKey
}

func (c testConfig) GetSigningMethod() string { return "HS256" }
func (c testConfig) GetContextKey() string    { return "user" }

func (c testConfig) GetTokenExpiration() int {
	if c.tokenExpiration == 0 {
		return 24
	}
	return c.tokenExpiration
}

func (c testConfig) GetIssuer() string     { return "newsroom-test" }
func (c testConfig) GetAudience() []string { return nil }
func (c testConfig) GetAuthScheme() string { return "Bearer" }

var dbCounter atomic.Int64

// newTestDB opens a fresh in-memory database with the schema applied.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	// a named memory DSN keeps every pool connection on the same database
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())

	require.NoError(t, newsroom.CreateSchema(context.Background(), db))

	return db
}

func newTestRepo(t *testing.T) newsroom.RepositoryManager {
	t.Helper()
	repo := newsroom.NewRepositoryManager(newTestDB(t))
	require.NoError(t, repo.Validate())
	return repo
}

func newTestAuthenticator(t *testing.T, repo newsroom.RepositoryManager) *newsroom.Auther {
	t.Helper()
	provider := newsroom.NewUserProvider(repo.Users())
	return newsroom.NewAuthenticator(provider, repo.Users(), testConfig{})
}

func mustRegisterUser(t *testing.T, repo newsroom.RepositoryManager, username, email, password string) *newsroom.User {
	t.Helper()

	hash, err := newsroom.HashPassword(password)
	require.NoError(t, err)

	user, err := repo.Users().Register(context.Background(), &newsroom.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return user
}

func mustCreateTheme(t *testing.T, repo newsroom.RepositoryManager, title string) *newsroom.Theme {
	t.Helper()

	theme, err := repo.Themes().Save(context.Background(), &newsroom.Theme{
		Title:       title,
		Description: title + " description",
	})
	require.NoError(t, err)

	return theme
}

func mustCreateArticle(t *testing.T, repo newsroom.RepositoryManager, theme *newsroom.Theme, author *newsroom.User, title string) *newsroom.Article {
	t.Helper()

	article, err := repo.Articles().Save(context.Background(), &newsroom.Article{
		Title:    title,
		Content:  title + " content",
		ThemeID:  theme.ID,
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	return article
}
