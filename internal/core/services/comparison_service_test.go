package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
)

func userStats(u domain.User, habitNames ...string) domain.UserStatistics {
	counts := make([]domain.HabitCount, 0, len(habitNames))
	for _, name := range habitNames {
		counts = append(counts, domain.HabitCount{Habit: habit(name), Count: 1})
	}
	return domain.UserStatistics{User: u, HabitCounts: counts}
}

func TestComparisonService_Build(t *testing.T) {
	svc := services.NewComparisonService()
	me := user("me", "Volodymyr")

	t.Run("Common favorite beats lexically smaller common habit", func(t *testing.T) {
		// Current logs {Aerobics, Pushups}, followed logs {Aerobics, Pushups};
		// Pushups is a favorite, so it must win over the lexically smaller
		// Aerobics.
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Aerobics", "Pushups"),
				userStats(followed, "Aerobics", "Pushups"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Aerobics", uc(me, 3), uc(followed, 5)),
				habitStats("Pushups", uc(me, 7), uc(followed, 2)),
			},
			FavoriteHabitNames: []string{"Pushups"},
			FollowedUserIDs:    []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Message, "Pushups")
		assert.Contains(t, entries[0].Message, "behind you")
	})

	t.Run("No common favorite picks the smallest common habit", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Situps", "Reading"),
				userStats(followed, "Situps", "Reading"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Reading", uc(me, 3), uc(followed, 5)),
				habitStats("Situps", uc(me, 1), uc(followed, 2)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Message, "Reading")
	})

	t.Run("Followed user ahead of the viewer", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Pushups"),
				userStats(followed, "Pushups"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Pushups", uc(me, 2), uc(followed, 9)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		assert.Equal(t, "Currently #1st, ahead of you (#2nd) in Pushups.\nYou might catch up with a little extra effort!", entries[0].Message)
	})

	t.Run("Equal counts yield a tie message at the shared rank", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Pushups"),
				userStats(followed, "Pushups"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Pushups", uc(me, 5), uc(followed, 5)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "You're tied at 1st in Pushups! Now's your chance to pull ahead.", entries[0].Message)
	})

	t.Run("Solo progress when nothing is shared", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(followed, "Meditation"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Meditation", uc(followed, 4), uc(user("u9", "Zoe"), 6)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		assert.Equal(t, "Currently #2nd in Meditation.\nMaybe you should give this habit a look.", entries[0].Message)
	})

	t.Run("No activity message for a silent followed user", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Pushups"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Pushups", uc(me, 2)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		assert.Contains(t, entries[0].Message, "doesn't seem to have done much yet")
	})

	t.Run("Entries follow followed-user name ascending order", func(t *testing.T) {
		anna := user("f1", "Anna")
		zoe := user("f2", "Zoe")
		boris := user("f3", "Boris")
		snap := domain.Snapshot{
			CurrentUser:     me,
			UsersByID:       map[string]domain.User{"f1": anna, "f2": zoe, "f3": boris},
			FollowedUserIDs: []string{"f2", "f1", "f3"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "Anna", entries[0].User.Name)
		assert.Equal(t, "Boris", entries[1].User.Name)
		assert.Equal(t, "Zoe", entries[2].User.Name)
	})

	t.Run("Followed IDs missing from the user catalog are skipped", func(t *testing.T) {
		snap := domain.Snapshot{
			CurrentUser:     me,
			UsersByID:       map[string]domain.User{},
			FollowedUserIDs: []string{"ghost"},
		}

		entries, err := svc.Build(snap)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Fail: common habit missing from statistics is a contract breach", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Pushups"),
				userStats(followed, "Pushups"),
			},
			FollowedUserIDs: []string{"f1"},
		}

		_, err := svc.Build(snap)

		assert.ErrorIs(t, err, domain.ErrInconsistentStatistics)
	})

	t.Run("Fail: logged user absent from the habit ranking is a contract breach", func(t *testing.T) {
		followed := user("f1", "Anna")
		snap := domain.Snapshot{
			CurrentUser: me,
			UsersByID:   map[string]domain.User{"f1": followed},
			UserStatistics: []domain.UserStatistics{
				userStats(me, "Pushups"),
				userStats(followed, "Pushups"),
			},
			HabitStatistics: []domain.HabitStatistics{
				habitStats("Pushups", uc(followed, 3)),
			},
			FollowedUserIDs: []string{"f1"},
		}

		_, err := svc.Build(snap)

		assert.ErrorIs(t, err, domain.ErrInconsistentStatistics)
	})
}
