package newsroom

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ThemeService manages the topical categories articles are published under.
type ThemeService struct {
	repo   RepositoryManager
	logger Logger
}

func NewThemeService(repo RepositoryManager) *ThemeService {
	return &ThemeService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *ThemeService) WithLogger(l Logger) *ThemeService {
	s.logger = l
	return s
}

// ThemePayload carries theme create/update input
type ThemePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate will run validation rules
func (r ThemePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func (s *ThemeService) Create(ctx context.Context, payload ThemePayload) (*Theme, error) {
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid theme payload").
			WithCode(errors.CodeBadRequest)
	}

	return s.repo.Themes().Save(ctx, &Theme{
		Title:       payload.Title,
		Description: payload.Description,
	})
}

func (s *ThemeService) Get(ctx context.Context, id uuid.UUID) (*Theme, error) {
	return s.repo.Themes().GetByUUID(ctx, id)
}

func (s *ThemeService) Update(ctx context.Context, id uuid.UUID, payload ThemePayload) (*Theme, error) {
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid theme payload").
			WithCode(errors.CodeBadRequest)
	}

	return s.repo.Themes().UpdateRecord(ctx, &Theme{
		ID:          id,
		Title:       payload.Title,
		Description: payload.Description,
	})
}

func (s *ThemeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Themes().DeleteByID(ctx, id)
}

// ListWithSubscriptionStatus returns every theme annotated with whether the
// given user follows it. This is the second read shape next to
// SubscriptionService.Subscriptions, which returns subscribed themes only.
func (s *ThemeService) ListWithSubscriptionStatus(ctx context.Context, userID uuid.UUID) ([]ThemeView, error) {
	themes, err := s.repo.Themes().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	subscribed := make(map[uuid.UUID]bool)
	if userID != uuid.Nil {
		subs, err := s.repo.Subscriptions().ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			subscribed[sub.ThemeID] = true
		}
	}

	views := make([]ThemeView, 0, len(themes))
	for _, theme := range themes {
		views = append(views, ThemeView{
			ID:           theme.ID,
			Title:        theme.Title,
			Description:  theme.Description,
			IsSubscribed: subscribed[theme.ID],
		})
	}

	return views, nil
}
