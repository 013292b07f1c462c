package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitAlreadyExists = errors.New("habit already exists")
)

type HabitRepository interface {
	// Create persists a new habit catalog entry.
	Create(ctx context.Context, habit Habit) error

	// GetByName retrieves a habit by its unique name.
	GetByName(ctx context.Context, name string) (Habit, error)

	// ListAll returns the full habit catalog keyed by habit name.
	ListAll(ctx context.Context) (map[string]Habit, error)
}

type UserRepository interface {
	// Create persists a new user profile.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by identifier.
	GetByID(ctx context.Context, id string) (User, error)

	// ListAll returns the full user catalog keyed by user ID.
	ListAll(ctx context.Context) (map[string]User, error)
}

type StatsRepository interface {
	// HabitStats returns per-habit statistics, optionally filtered to the
	// given habit names. A nil or empty filter returns all habits.
	HabitStats(ctx context.Context, names []string) ([]HabitStatistics, error)

	// UserStats returns per-user statistics, optionally filtered to the
	// given user IDs.
	UserStats(ctx context.Context, ids []string) ([]UserStatistics, error)

	// Combined returns both views derived from one consistent read.
	Combined(ctx context.Context) (CombinedStatistics, error)

	// LeadingStats returns the user's statistics restricted to habits the
	// user currently leads (shares the maximum count, ties included).
	LeadingStats(ctx context.Context, userID string) (UserStatistics, error)
}

type LogRepository interface {
	// Insert records one log event.
	Insert(ctx context.Context, logged LoggedHabit) error
}

type PreferencesRepository interface {
	FavoriteHabits(ctx context.Context, userID string) ([]string, error)

	// ToggleFavorite flips membership and reports the new state.
	ToggleFavorite(ctx context.Context, userID, habitName string) (bool, error)

	FollowedUserIDs(ctx context.Context, userID string) ([]string, error)

	// ToggleFollow flips membership and reports the new state.
	ToggleFollow(ctx context.Context, userID, followedID string) (bool, error)
}
