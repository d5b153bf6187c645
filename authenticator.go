package newsroom

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Auther coordinates registration and login, producing a signed token on
// success. Registration authenticates the fresh credentials immediately so a
// register call always yields a usable token without a second request.
type Auther struct {
	provider     *UserProvider
	registry     UserRegistry
	tokenService TokenService
	logger       Logger
}

// UserRegistry is the store slice the orchestrator needs to create accounts
type UserRegistry interface {
	Register(ctx context.Context, user *User) (*User, error)
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider *UserProvider, registry UserRegistry, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		registry:     registry,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, mainly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// RegisterPayload carries the registration input constraints
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, 100)),
	)
}

// Register creates the user and immediately authenticates the same
// credentials, returning a token.
func (s *Auther) Register(ctx context.Context, username, email, password string) (string, error) {
	payload := RegisterPayload{Username: username, Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return "", errors.Wrap(err, errors.CategoryValidation, "invalid registration payload").
			WithCode(errors.CodeBadRequest)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := s.registry.Register(ctx, user); err != nil {
		s.logger.Error("Register create user error: %s", err)
		return "", err
	}

	return s.Login(ctx, email, password)
}

// Login resolves the identifier, verifies the password, and issues a token
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error: %s", err)
		return "", err
	}

	if identity == nil {
		s.logger.Error("Login identity is nil")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(identity)
	if err != nil {
		s.logger.Error("Login token issue error: %s", err)
		return "", err
	}

	return token, nil
}

// IdentityFromToken validates a raw token and resolves its subject back to a
// full principal.
func (s *Auther) IdentityFromToken(ctx context.Context, raw string) (Identity, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		return nil, err
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, claims.Subject())
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTokenMalformed
		}
		return nil, err
	}

	return identity, nil
}

// Verify interface compliance
var _ Authenticator = (*Auther)(nil)
