package newsroom

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionService is the ledger of user-to-theme subscriptions. Both
// endpoints of the relation must exist, and at most one row may exist per
// (user, theme) pair at any time.
type SubscriptionService struct {
	repo   RepositoryManager
	logger Logger
}

func NewSubscriptionService(repo RepositoryManager) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *SubscriptionService) WithLogger(l Logger) *SubscriptionService {
	s.logger = l
	return s
}

// Subscribe creates a subscription for the user to the theme. The existence
// check is advisory; the unique index settles concurrent duplicates.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, themeID uuid.UUID) (*Subscription, error) {
	user, err := s.repo.Users().GetByUUID(ctx, userID)
	if err != nil {
		return nil, err
	}

	theme, err := s.repo.Themes().GetByUUID(ctx, themeID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Subscriptions().GetByUserAndTheme(ctx, userID, themeID); err == nil {
		return nil, ErrAlreadySubscribed
	}

	sub := &Subscription{
		UserID:  user.ID,
		ThemeID: theme.ID,
	}

	record, err := s.repo.Subscriptions().Save(ctx, sub)
	if err != nil {
		s.logger.Error("Subscribe save error for user %s theme %s: %s", userID, themeID, err)
		return nil, err
	}

	return record, nil
}

// Unsubscribe removes an existing subscription.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, themeID uuid.UUID) error {
	if _, err := s.repo.Users().GetByUUID(ctx, userID); err != nil {
		return err
	}

	if _, err := s.repo.Themes().GetByUUID(ctx, themeID); err != nil {
		return err
	}

	if _, err := s.repo.Subscriptions().GetByUserAndTheme(ctx, userID, themeID); err != nil {
		return err
	}

	return s.repo.Subscriptions().DeleteByUserAndTheme(ctx, userID, themeID)
}

// Subscriptions returns only the themes the user follows, each flagged as
// subscribed.
func (s *SubscriptionService) Subscriptions(ctx context.Context, userID uuid.UUID) ([]ThemeView, error) {
	if _, err := s.repo.Users().GetByUUID(ctx, userID); err != nil {
		return nil, err
	}

	subs, err := s.repo.Subscriptions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ThemeView, 0, len(subs))
	for _, sub := range subs {
		if sub.Theme == nil {
			continue
		}
		views = append(views, ThemeView{
			ID:           sub.Theme.ID,
			Title:        sub.Theme.Title,
			Description:  sub.Theme.Description,
			IsSubscribed: true,
		})
	}

	return views, nil
}

// SubscribedThemeIDs returns the distinct theme set the user follows.
func (s *SubscriptionService) SubscribedThemeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	subs, err := s.repo.Subscriptions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(subs))
	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		if seen[sub.ThemeID] {
			continue
		}
		seen[sub.ThemeID] = true
		ids = append(ids, sub.ThemeID)
	}

	return ids, nil
}
