package newsroom

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/newsroom/middleware/jwtware"
)

// RouteAuthenticator adapts the Authenticator to the HTTP edge: it builds
// the bearer middleware and exposes login/register against request payloads.
type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	Logger       Logger
	ErrorHandler fiber.ErrorHandler
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = DefaultErrorHandler(a.Logger)

	return a, nil
}

// ProtectedRoute returns the bearer-token middleware wired to the token
// service. Requests without a valid token never reach the handler.
func (a *RouteAuthenticator) ProtectedRoute(errorHandler fiber.ErrorHandler) fiber.Handler {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   errorHandler,
		AuthScheme:     a.cfg.GetAuthScheme(),
		ContextKey:     a.cfg.GetContextKey(),
		TokenValidator: &tokenValidatorAdapter{ts: a.auth.TokenService()},
	})
}

// MakeAuthErrorHandler normalizes middleware failures into the auth error
// taxonomy. With optional set, requests proceed unauthenticated.
func (a *RouteAuthenticator) MakeAuthErrorHandler(optional bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized).
				WithTextCode(TextCodeTokenMalformed)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding: %s", richErr.Message)
			return c.Next()
		}

		return a.ErrorHandler(c, richErr)
	}
}

// tokenValidatorAdapter narrows TokenService to the jwtware contract.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (v *tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ClaimsFromContext reads the validated claims the middleware stored under
// the context key.
func ClaimsFromContext(c *fiber.Ctx, contextKey string) (AuthClaims, error) {
	raw := c.Locals(contextKey)
	if raw == nil {
		return nil, ErrTokenMalformed
	}

	claims, ok := raw.(AuthClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// MapErrorToStatus translates a domain error into the HTTP status its
// category carries. Conflicts surface as 400 to match the public contract.
func MapErrorToStatus(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return fiber.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusBadRequest
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// DefaultErrorHandler renders any error as a structured JSON body. Plug it
// into fiber.Config.ErrorHandler so handlers can return domain errors as-is.
func DefaultErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := MapErrorToStatus(richErr)
		if status == fiber.StatusInternalServerError {
			logger.Error("request error: %s", richErr.Message)
		}

		body := fiber.Map{
			"error": richErr.Message,
		}
		if richErr.TextCode != "" {
			body["code"] = richErr.TextCode
		}

		return c.Status(status).JSON(body)
	}
}
