package newsroom

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// HTTPController exposes the JSON API. Handlers return domain errors as-is;
// the app-level error handler translates them to status codes.
type HTTPController struct {
	Logger        Logger
	Repo          RepositoryManager
	Auther        Authenticator
	Feed          *FeedService
	Comments      *CommentService
	Subscriptions *SubscriptionService
	Themes        *ThemeService
	ContextKey    string
}

type HTTPControllerOption func(*HTTPController) *HTTPController

func NewHTTPController(opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		Logger:     defLogger{},
		ContextKey: "user",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in http controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in http controller...")
	}

	if c.Feed == nil || c.Comments == nil || c.Subscriptions == nil || c.Themes == nil {
		panic("Missing services in http controller...")
	}

	return c
}

func WithControllerLogger(l Logger) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Logger = l
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuther(auther Authenticator) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Auther = auther
		return c
	}
}

func WithControllerServices(feed *FeedService, comments *CommentService, subs *SubscriptionService, themes *ThemeService) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Feed = feed
		c.Comments = comments
		c.Subscriptions = subs
		c.Themes = themes
		return c
	}
}

func WithControllerContextKey(key string) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.ContextKey = key
		return c
	}
}

// RegisterRoutes mounts the API. protected is the bearer middleware;
// optional validates a token when present but lets anonymous requests
// through, used where responses are annotated per caller.
func (a *HTTPController) RegisterRoutes(app fiber.Router, protected, optional fiber.Handler) {
	app.Post("/auth/register", a.RegisterPost)
	app.Post("/auth/login", a.LoginPost)
	app.Get("/auth/me", protected, a.CurrentUser)

	api := app.Group("/api")

	// specific article paths go before /articles/:id
	api.Get("/articles/subscribed/:userId", protected, a.FeedByUser)
	api.Get("/articles", a.ArticleList)
	api.Get("/articles/:id", a.ArticleGet)
	api.Post("/articles", protected, a.ArticleCreate)
	api.Put("/articles/:id", protected, a.ArticleUpdate)
	api.Delete("/articles/:id", protected, a.ArticleDelete)

	api.Post("/subscriptions/subscribe", protected, a.SubscribePost)
	api.Delete("/subscriptions/unsubscribe", protected, a.UnsubscribeDelete)
	api.Get("/subscriptions/user/:userId", protected, a.SubscriptionList)

	api.Get("/themes", optional, a.ThemeList)
	api.Get("/themes/:id", a.ThemeGet)
	api.Post("/themes", protected, a.ThemeCreate)
	api.Put("/themes/:id", protected, a.ThemeUpdate)
	api.Delete("/themes/:id", protected, a.ThemeDelete)

	api.Post("/comments", protected, a.CommentCreate)
	api.Get("/comments/article/:articleId", protected, a.CommentListByArticle)
	api.Delete("/comments/:id", protected, a.CommentDelete)

	api.Get("/users", protected, a.UserList)
	api.Get("/users/:id", protected, a.UserGet)
	api.Put("/users/:id", protected, a.UserUpdate)
	api.Delete("/users/:id", protected, a.UserDelete)
}

// claims reads the validated bearer claims stored by the middleware.
func (a *HTTPController) claims(c *fiber.Ctx) (AuthClaims, error) {
	return ClaimsFromContext(c, a.ContextKey)
}

// callerID returns the authenticated caller's user id.
func (a *HTTPController) callerID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := a.claims(c)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}

	return id, nil
}

// callerIdentity resolves the authenticated caller to a full identity.
func (a *HTTPController) callerIdentity(c *fiber.Ctx) (Identity, error) {
	id, err := a.callerID(c)
	if err != nil {
		return nil, err
	}

	user, err := a.Repo.Users().GetByUUID(c.UserContext(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTokenMalformed
		}
		return nil, err
	}

	return NewIdentity(user), nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid "+name, errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func queryUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid "+name, errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

// RegisterRequest payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

func (a *HTTPController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	token, err := a.Auther.Register(c.UserContext(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("register error: %s", err)
		return err
	}

	return c.JSON(TokenResponse{Token: token})
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *HTTPController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return ErrInvalidCredentials
	}

	token, err := a.Auther.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		a.Logger.Error("login error: %s", err)
		return err
	}

	return c.JSON(TokenResponse{Token: token})
}

func (a *HTTPController) CurrentUser(c *fiber.Ctx) error {
	id, err := a.callerID(c)
	if err != nil {
		return err
	}

	user, err := a.Repo.Users().GetByUUID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (a *HTTPController) ArticleList(c *fiber.Ctx) error {
	views, err := a.Feed.ListArticles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(views)
}

func (a *HTTPController) ArticleGet(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	view, err := a.Feed.ArticleByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(view)
}

func (a *HTTPController) ArticleCreate(c *fiber.Ctx) error {
	payload := new(ArticlePayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	identity, err := a.callerIdentity(c)
	if err != nil {
		return err
	}

	article, err := a.Feed.CreateArticle(c.UserContext(), *payload, identity)
	if err != nil {
		return err
	}

	return c.JSON(article)
}

func (a *HTTPController) ArticleUpdate(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	payload := new(ArticlePayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	article, err := a.Feed.UpdateArticle(c.UserContext(), id, *payload)
	if err != nil {
		return err
	}

	return c.JSON(article)
}

func (a *HTTPController) ArticleDelete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := a.Feed.DeleteArticle(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *HTTPController) FeedByUser(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}

	views, err := a.Feed.FeedForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(views)
}

func (a *HTTPController) SubscribePost(c *fiber.Ctx) error {
	userID, err := queryUUID(c, "userId")
	if err != nil {
		return err
	}

	themeID, err := queryUUID(c, "themeId")
	if err != nil {
		return err
	}

	sub, err := a.Subscriptions.Subscribe(c.UserContext(), userID, themeID)
	if err != nil {
		return err
	}

	return c.JSON(sub)
}

func (a *HTTPController) UnsubscribeDelete(c *fiber.Ctx) error {
	userID, err := queryUUID(c, "userId")
	if err != nil {
		return err
	}

	themeID, err := queryUUID(c, "themeId")
	if err != nil {
		return err
	}

	if err := a.Subscriptions.Unsubscribe(c.UserContext(), userID, themeID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *HTTPController) SubscriptionList(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}

	views, err := a.Subscriptions.Subscriptions(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(views)
}

func (a *HTTPController) ThemeList(c *fiber.Ctx) error {
	// anonymous callers get every theme flagged unsubscribed
	userID := uuid.Nil
	if id, err := a.callerID(c); err == nil {
		userID = id
	}

	views, err := a.Themes.ListWithSubscriptionStatus(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(views)
}

func (a *HTTPController) ThemeGet(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	theme, err := a.Themes.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(theme)
}

func (a *HTTPController) ThemeCreate(c *fiber.Ctx) error {
	payload := new(ThemePayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	theme, err := a.Themes.Create(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.JSON(theme)
}

func (a *HTTPController) ThemeUpdate(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	payload := new(ThemePayload)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	theme, err := a.Themes.Update(c.UserContext(), id, *payload)
	if err != nil {
		return err
	}

	return c.JSON(theme)
}

func (a *HTTPController) ThemeDelete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := a.Themes.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *HTTPController) CommentCreate(c *fiber.Ctx) error {
	payload := new(CommentPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	identity, err := a.callerIdentity(c)
	if err != nil {
		return err
	}

	comment, err := a.Comments.AddComment(c.UserContext(), *payload, identity)
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func (a *HTTPController) CommentListByArticle(c *fiber.Ctx) error {
	articleID, err := paramUUID(c, "articleId")
	if err != nil {
		return err
	}

	views, err := a.Comments.ListByArticle(c.UserContext(), articleID)
	if err != nil {
		return err
	}

	return c.JSON(views)
}

func (a *HTTPController) CommentDelete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := a.Comments.DeleteComment(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *HTTPController) UserList(c *fiber.Ctx) error {
	users, err := a.Repo.Users().ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (a *HTTPController) UserGet(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := a.Repo.Users().GetByUUID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// UserUpdateRequest payload
type UserUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate will run validation rules
func (r UserUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (a *HTTPController) UserUpdate(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	payload := new(UserUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "error parsing body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid user payload").
			WithCode(errors.CodeBadRequest)
	}

	user, err := a.Repo.Users().UpdateRecord(c.UserContext(), &User{
		ID:       id,
		Username: payload.Username,
		Email:    payload.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (a *HTTPController) UserDelete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := a.Repo.Users().DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
