package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

func testHabit(name string) domain.Habit {
	return domain.Habit{
		Name:     name,
		Category: domain.Category{Name: "Fitness", Color: domain.Color{Hue: 0.5, Saturation: 0.5, Brightness: 0.5}},
	}
}

func TestHabitStatisticsValidate(t *testing.T) {
	t.Run("Accepts well-formed counts", func(t *testing.T) {
		stats := domain.HabitStatistics{
			Habit: testHabit("Pushups"),
			UserCounts: []domain.UserCount{
				count("u1", "Anna", 0),
				count("u2", "Boris", 12),
			},
		}

		assert.NoError(t, stats.Validate())
	})

	t.Run("Rejects duplicate user", func(t *testing.T) {
		stats := domain.HabitStatistics{
			Habit: testHabit("Pushups"),
			UserCounts: []domain.UserCount{
				count("u1", "Anna", 3),
				count("u1", "Anna", 7),
			},
		}

		assert.ErrorIs(t, stats.Validate(), domain.ErrDuplicateUserCount)
	})

	t.Run("Rejects negative count", func(t *testing.T) {
		stats := domain.HabitStatistics{
			Habit:      testHabit("Pushups"),
			UserCounts: []domain.UserCount{count("u1", "Anna", -1)},
		}

		assert.ErrorIs(t, stats.Validate(), domain.ErrNegativeCount)
	})
}

func TestUserStatistics(t *testing.T) {
	t.Run("Rejects duplicate habit", func(t *testing.T) {
		stats := domain.UserStatistics{
			User: domain.User{ID: "u1", Name: "Anna"},
			HabitCounts: []domain.HabitCount{
				{Habit: testHabit("Pushups"), Count: 2},
				{Habit: testHabit("Pushups"), Count: 5},
			},
		}

		assert.ErrorIs(t, stats.Validate(), domain.ErrDuplicateHabitCount)
	})

	t.Run("LoggedHabitNames returns the name set", func(t *testing.T) {
		stats := domain.UserStatistics{
			User: domain.User{ID: "u1", Name: "Anna"},
			HabitCounts: []domain.HabitCount{
				{Habit: testHabit("Pushups"), Count: 2},
				{Habit: testHabit("Reading"), Count: 5},
			},
		}

		names := stats.LoggedHabitNames()

		require.Len(t, names, 2)
		assert.Contains(t, names, "Pushups")
		assert.Contains(t, names, "Reading")
	})
}

func TestCombinedStatisticsValidate(t *testing.T) {
	combined := domain.CombinedStatistics{
		HabitStatistics: []domain.HabitStatistics{
			{
				Habit: testHabit("Pushups"),
				UserCounts: []domain.UserCount{
					count("u1", "Anna", 3),
					count("u1", "Anna", 3),
				},
			},
		},
	}

	assert.ErrorIs(t, combined.Validate(), domain.ErrDuplicateUserCount)
}

func TestLoggedHabitValidate(t *testing.T) {
	assert.ErrorIs(t, domain.LoggedHabit{HabitName: "Pushups"}.Validate(), domain.ErrLoggedHabitUserIDEmpty)
	assert.ErrorIs(t, domain.LoggedHabit{UserID: "u1"}.Validate(), domain.ErrLoggedHabitNameEmpty)
	assert.NoError(t, domain.LoggedHabit{UserID: "u1", HabitName: "Pushups"}.Validate())
}
