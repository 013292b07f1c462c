package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNegativeCount            = errors.New("count cannot be negative")
	ErrDuplicateUserCount       = errors.New("duplicate user count for the same user")
	ErrDuplicateHabitCount      = errors.New("duplicate habit count for the same habit")
	ErrInconsistentStatistics   = errors.New("statistics inconsistent with logged habit sets")
	ErrLoggedHabitUserIDEmpty   = errors.New("logged habit user id cannot be empty")
	ErrLoggedHabitNameEmpty     = errors.New("logged habit name cannot be empty")
	ErrLoggedHabitUnknownHabit  = errors.New("logged habit references an unknown habit")
)

// UserCount is one user's cumulative tally for a single habit.
// Identity is the user: a well-formed HabitStatistics carries at most
// one UserCount per user.
type UserCount struct {
	User  User `json:"user"`
	Count int  `json:"count"`
}

// HabitCount is the symmetric record: one habit's tally for a single
// user, identified by the habit.
type HabitCount struct {
	Habit Habit `json:"habit"`
	Count int   `json:"count"`
}

// HabitStatistics holds every known user's tally for one habit.
// The userCounts slice carries no ordering guarantee.
type HabitStatistics struct {
	Habit      Habit       `json:"habit"`
	UserCounts []UserCount `json:"userCounts"`
}

func (s HabitStatistics) Validate() error {
	seen := make(map[string]struct{}, len(s.UserCounts))
	for _, uc := range s.UserCounts {
		if uc.Count < 0 {
			return fmt.Errorf("%w: user %q on habit %q", ErrNegativeCount, uc.User.ID, s.Habit.Name)
		}
		if _, dup := seen[uc.User.ID]; dup {
			return fmt.Errorf("%w: user %q on habit %q", ErrDuplicateUserCount, uc.User.ID, s.Habit.Name)
		}
		seen[uc.User.ID] = struct{}{}
	}
	return nil
}

func (s HabitStatistics) FindUserCount(userID string) (UserCount, bool) {
	for _, uc := range s.UserCounts {
		if uc.User.ID == userID {
			return uc, true
		}
	}
	return UserCount{}, false
}

// UserStatistics holds every habit one user has logged.
type UserStatistics struct {
	User        User         `json:"user"`
	HabitCounts []HabitCount `json:"habitCounts"`
}

func (s UserStatistics) Validate() error {
	seen := make(map[string]struct{}, len(s.HabitCounts))
	for _, hc := range s.HabitCounts {
		if hc.Count < 0 {
			return fmt.Errorf("%w: habit %q for user %q", ErrNegativeCount, hc.Habit.Name, s.User.ID)
		}
		if _, dup := seen[hc.Habit.Name]; dup {
			return fmt.Errorf("%w: habit %q for user %q", ErrDuplicateHabitCount, hc.Habit.Name, s.User.ID)
		}
		seen[hc.Habit.Name] = struct{}{}
	}
	return nil
}

// LoggedHabitNames returns the set of habit names this user has logged.
func (s UserStatistics) LoggedHabitNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.HabitCounts))
	for _, hc := range s.HabitCounts {
		names[hc.Habit.Name] = struct{}{}
	}
	return names
}

// CombinedStatistics pairs both statistic views fetched from the same
// server snapshot, so per-user and per-habit data never disagree.
type CombinedStatistics struct {
	UserStatistics  []UserStatistics  `json:"userStatistics"`
	HabitStatistics []HabitStatistics `json:"habitStatistics"`
}

func (c CombinedStatistics) Validate() error {
	for _, hs := range c.HabitStatistics {
		if err := hs.Validate(); err != nil {
			return err
		}
	}
	for _, us := range c.UserStatistics {
		if err := us.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoggedHabit is a single log event submitted by a user.
type LoggedHabit struct {
	UserID    string    `json:"userID"`
	HabitName string    `json:"habitName"`
	Timestamp time.Time `json:"timestamp"`
}

func (l LoggedHabit) Validate() error {
	if l.UserID == "" {
		return ErrLoggedHabitUserIDEmpty
	}
	if l.HabitName == "" {
		return ErrLoggedHabitNameEmpty
	}
	return nil
}
