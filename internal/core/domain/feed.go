package domain

import "sort"

// FeedItemKind discriminates the closed set of feed item variants.
type FeedItemKind string

const (
	FeedItemLeaderboard  FeedItemKind = "leaderboard"
	FeedItemFollowedUser FeedItemKind = "followed_user"
)

// LeaderboardEntry is one favorite habit's board: the leading line and,
// when the board has at least two participants, a secondary line.
type LeaderboardEntry struct {
	HabitName string  `json:"habit_name"`
	Leading   string  `json:"leading"`
	Secondary *string `json:"secondary,omitempty"`
}

// FollowedUserEntry pairs a followed user with the comparison message
// generated for them.
type FollowedUserEntry struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// FeedItem is a tagged variant: exactly one of the payload fields is set,
// matching Kind. Consumers switch on Kind and never need type dispatch.
type FeedItem struct {
	Kind         FeedItemKind       `json:"kind"`
	Leaderboard  *LeaderboardEntry  `json:"leaderboard,omitempty"`
	FollowedUser *FollowedUserEntry `json:"followed_user,omitempty"`
}

func NewLeaderboardItem(entry LeaderboardEntry) FeedItem {
	return FeedItem{Kind: FeedItemLeaderboard, Leaderboard: &entry}
}

func NewFollowedUserItem(entry FollowedUserEntry) FeedItem {
	return FeedItem{Kind: FeedItemFollowedUser, FollowedUser: &entry}
}

// Snapshot is the engine's entire input for one refresh cycle: fresh,
// immutable, and possibly partial (absent resources arrive as empty
// collections and render as the "nobody yet" / "no activity" states).
type Snapshot struct {
	CurrentUser        User
	UsersByID          map[string]User
	HabitStatistics    []HabitStatistics
	UserStatistics     []UserStatistics
	FavoriteHabitNames []string
	FollowedUserIDs    []string
}

// FavoriteSet returns the favorite habit names as a set.
func (s Snapshot) FavoriteSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.FavoriteHabitNames))
	for _, name := range s.FavoriteHabitNames {
		set[name] = struct{}{}
	}
	return set
}

// FollowedUsers resolves the followed IDs against the user catalog and
// returns them sorted by name ascending. IDs missing from the catalog
// are skipped: a stale follow list must not break the feed.
func (s Snapshot) FollowedUsers() []User {
	users := make([]User, 0, len(s.FollowedUserIDs))
	for _, id := range s.FollowedUserIDs {
		if u, ok := s.UsersByID[id]; ok {
			users = append(users, u)
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].Less(users[j])
	})

	return users
}

// UserStatisticsFor returns the per-user statistics for one user, or an
// empty record when the user has logged nothing.
func (s Snapshot) UserStatisticsFor(userID string) (UserStatistics, bool) {
	for _, us := range s.UserStatistics {
		if us.User.ID == userID {
			return us, true
		}
	}
	return UserStatistics{}, false
}

// HabitStatisticsFor returns the per-habit statistics for one habit name.
func (s Snapshot) HabitStatisticsFor(habitName string) (HabitStatistics, bool) {
	for _, hs := range s.HabitStatistics {
		if hs.Habit.Name == habitName {
			return hs, true
		}
	}
	return HabitStatistics{}, false
}
