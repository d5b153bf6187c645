package newsroom

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserFinder is the store slice the provider needs to resolve identities
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// UserProvider resolves login identifiers to user records. Lookup order is
// email first, then username; the email match wins when the same string
// matches both columns across different users.
type UserProvider struct {
	store  UserFinder
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserFinder) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown identifiers and wrong passwords collapse into the same
// ErrInvalidCredentials so the caller cannot tell them apart.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.findUser(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		u.logger.Debug("VerifyIdentity password mismatch for %s", identifier)
		return nil, ErrInvalidCredentials
	}

	return NewIdentity(user), nil
}

// FindIdentityByIdentifier resolves an identifier without checking a
// password. Used to translate a validated token subject back into a full
// principal for authorization sensitive operations.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.findUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return NewIdentity(user), nil
}

// FindUserByIdentifier resolves an identifier to the full user record.
func (u *UserProvider) FindUserByIdentifier(ctx context.Context, identifier string) (*User, error) {
	return u.findUser(ctx, identifier)
}

func (u *UserProvider) findUser(ctx context.Context, identifier string) (*User, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	return u.store.GetByUsername(ctx, identifier)
}
