package services

import (
	"fmt"
	"sort"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// LeaderboardService builds one board entry per favorite habit present
// in the statistics. Pure: every call works only on the given snapshot.
type LeaderboardService struct{}

func NewLeaderboardService() *LeaderboardService {
	return &LeaderboardService{}
}

func (s *LeaderboardService) Build(snap domain.Snapshot) ([]domain.LeaderboardEntry, error) {
	favorites := snap.FavoriteSet()

	var selected []domain.HabitStatistics
	for _, stat := range snap.HabitStatistics {
		if _, ok := favorites[stat.Habit.Name]; ok {
			selected = append(selected, stat)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Habit.Name < selected[j].Habit.Name
	})

	entries := make([]domain.LeaderboardEntry, 0, len(selected))
	for _, stat := range selected {
		if err := stat.Validate(); err != nil {
			return nil, fmt.Errorf("leaderboard for %q: %w", stat.Habit.Name, err)
		}

		entries = append(entries, s.buildEntry(stat, snap.CurrentUser))
	}

	return entries, nil
}

func (s *LeaderboardService) buildEntry(stat domain.HabitStatistics, currentUser domain.User) domain.LeaderboardEntry {
	ranked := domain.RankUserCounts(stat.UserCounts)
	myIndex, mePresent := domain.RankIndexOf(ranked, currentUser.ID)

	entry := domain.LeaderboardEntry{HabitName: stat.Habit.Name}

	switch len(ranked) {
	case 0:
		entry.Leading = nobodyYetMessage
	case 1:
		only := ranked[0]
		entry.Leading = rankingLine(only, only.User.ID == currentUser.ID, false, 0)
	default:
		leader := ranked[0]
		entry.Leading = rankingLine(leader, leader.User.ID == currentUser.ID, true, 0)

		// The secondary slot surfaces the viewer's own position when they
		// are ranked but not leading, otherwise the runner-up.
		var secondary string
		if mePresent && myIndex != 0 {
			secondary = rankingLine(ranked[myIndex], true, true, myIndex)
		} else {
			runnerUp := ranked[1]
			secondary = rankingLine(runnerUp, runnerUp.User.ID == currentUser.ID, true, 1)
		}
		entry.Secondary = &secondary
	}

	return entry
}
