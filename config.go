package newsroom

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// EnvConfig is the environment-backed auth configuration. The signing key
// has no default on purpose: a process without one must not start.
type EnvConfig struct {
	SigningKey      string   `env:"JWT_SECRET_KEY"`
	SigningMethod   string   `env:"JWT_SIGNING_METHOD" envDefault:"HS256"`
	ContextKey      string   `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	TokenExpiration int      `env:"TOKEN_EXPIRATION" envDefault:"24"`
	Issuer          string   `env:"JWT_ISSUER" envDefault:"newsroom"`
	Audience        []string `env:"JWT_AUDIENCE" envSeparator:","`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
}

var _ Config = (*EnvConfig)(nil)

// NewConfigFromEnv parses configuration from environment variables and
// rejects a missing or empty signing key.
func NewConfigFromEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "parse env config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the fatal startup requirements.
func (c *EnvConfig) Validate() error {
	if c.SigningKey == "" {
		return errors.New("JWT_SECRET_KEY is required and cannot be empty", errors.CategoryOperation)
	}
	return nil
}

func (c *EnvConfig) GetSigningKey() string    { return c.SigningKey }
func (c *EnvConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *EnvConfig) GetContextKey() string    { return c.ContextKey }
func (c *EnvConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *EnvConfig) GetIssuer() string        { return c.Issuer }
func (c *EnvConfig) GetAudience() []string    { return c.Audience }
func (c *EnvConfig) GetAuthScheme() string    { return c.AuthScheme }
