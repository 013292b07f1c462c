package services

import (
	"fmt"
	"sort"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// ComparisonService produces, for every followed user, the single habit
// comparison message shown in the feed. Pure, like the leaderboard
// builder. Errors surface only on contract breaches: data promised by
// set membership that the statistics then fail to hold.
type ComparisonService struct{}

func NewComparisonService() *ComparisonService {
	return &ComparisonService{}
}

func (s *ComparisonService) Build(snap domain.Snapshot) ([]domain.FollowedUserEntry, error) {
	currentLogged := loggedNames(snap, snap.CurrentUser.ID)
	favorites := snap.FavoriteSet()

	followed := snap.FollowedUsers()
	entries := make([]domain.FollowedUserEntry, 0, len(followed))

	for _, followedUser := range followed {
		followedLogged := loggedNames(snap, followedUser.ID)
		common := intersect(followedLogged, currentLogged)

		var message string
		var err error

		switch {
		case len(common) > 0:
			message, err = s.sameHabitMessage(snap, followedUser, common, favorites)
		case len(followedLogged) > 0:
			message, err = s.soloMessage(snap, followedUser, followedLogged)
		default:
			message = noActivityMessage
		}

		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.FollowedUserEntry{User: followedUser, Message: message})
	}

	return entries, nil
}

// sameHabitMessage picks the focus habit (a common favorite when one
// exists, else the smallest common name) and compares both users' ranks
// within it.
func (s *ComparisonService) sameHabitMessage(snap domain.Snapshot, followedUser domain.User, common, favorites map[string]struct{}) (string, error) {
	habitName := smallest(intersect(common, favorites))
	if habitName == "" {
		habitName = smallest(common)
	}

	ranked, err := rankedCountsFor(snap, habitName)
	if err != nil {
		return "", err
	}

	currentRank, ok := domain.RankIndexOf(ranked, snap.CurrentUser.ID)
	if !ok {
		return "", fmt.Errorf("%w: user %q logged %q but is missing from its ranking",
			domain.ErrInconsistentStatistics, snap.CurrentUser.ID, habitName)
	}
	followedRank, ok := domain.RankIndexOf(ranked, followedUser.ID)
	if !ok {
		return "", fmt.Errorf("%w: user %q logged %q but is missing from its ranking",
			domain.ErrInconsistentStatistics, followedUser.ID, habitName)
	}

	// Equal counts are a tie even though the deterministic tie-break gives
	// the two users distinct indices; the shared rank is the better index.
	currentCount := ranked[currentRank].Count
	followedCount := ranked[followedRank].Count

	switch {
	case currentCount == followedCount:
		return tiedMessage(min(currentRank, followedRank), habitName), nil
	case currentRank < followedRank:
		return behindMessage(followedRank, currentRank, habitName), nil
	default:
		return aheadMessage(followedRank, currentRank, habitName), nil
	}
}

func (s *ComparisonService) soloMessage(snap domain.Snapshot, followedUser domain.User, followedLogged map[string]struct{}) (string, error) {
	habitName := smallest(followedLogged)

	ranked, err := rankedCountsFor(snap, habitName)
	if err != nil {
		return "", err
	}

	followedRank, ok := domain.RankIndexOf(ranked, followedUser.ID)
	if !ok {
		return "", fmt.Errorf("%w: user %q logged %q but is missing from its ranking",
			domain.ErrInconsistentStatistics, followedUser.ID, habitName)
	}

	return soloProgressMessage(followedRank, habitName), nil
}

func rankedCountsFor(snap domain.Snapshot, habitName string) ([]domain.UserCount, error) {
	stats, ok := snap.HabitStatisticsFor(habitName)
	if !ok {
		return nil, fmt.Errorf("%w: habit %q is logged but has no statistics",
			domain.ErrInconsistentStatistics, habitName)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("comparison for %q: %w", habitName, err)
	}

	return domain.RankUserCounts(stats.UserCounts), nil
}

func loggedNames(snap domain.Snapshot, userID string) map[string]struct{} {
	stats, ok := snap.UserStatisticsFor(userID)
	if !ok {
		return nil
	}
	return stats.LoggedHabitNames()
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for name := range a {
		if _, ok := b[name]; ok {
			out[name] = struct{}{}
		}
	}
	return out
}

// smallest returns the lexicographically smallest member, or "" for an
// empty set.
func smallest(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}
