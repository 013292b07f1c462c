package services

import (
	"context"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

type PreferencesService struct {
	prefs  domain.PreferencesRepository
	habits domain.HabitRepository
	users  domain.UserRepository
}

func NewPreferencesService(prefs domain.PreferencesRepository, habits domain.HabitRepository, users domain.UserRepository) *PreferencesService {
	return &PreferencesService{
		prefs:  prefs,
		habits: habits,
		users:  users,
	}
}

// ToggleFavorite flips a habit in the user's favorites and reports
// whether it is now a favorite.
func (s *PreferencesService) ToggleFavorite(ctx context.Context, userID, habitName string) (bool, error) {
	if _, err := s.habits.GetByName(ctx, habitName); err != nil {
		return false, err
	}

	return s.prefs.ToggleFavorite(ctx, userID, habitName)
}

// ToggleFollow flips a followed user and reports whether they are now
// followed. Following yourself is rejected.
func (s *PreferencesService) ToggleFollow(ctx context.Context, userID, followedID string) (bool, error) {
	if userID == followedID {
		return false, domain.ErrSelfFollow
	}

	if _, err := s.users.GetByID(ctx, followedID); err != nil {
		return false, err
	}

	return s.prefs.ToggleFollow(ctx, userID, followedID)
}

func (s *PreferencesService) Favorites(ctx context.Context, userID string) ([]string, error) {
	return s.prefs.FavoriteHabits(ctx, userID)
}

func (s *PreferencesService) Following(ctx context.Context, userID string) ([]string, error) {
	return s.prefs.FollowedUserIDs(ctx, userID)
}
