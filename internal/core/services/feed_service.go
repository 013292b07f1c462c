package services

import (
	"context"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// FeedService is the engine entry point: one snapshot in, one complete
// feed out. It also knows how to assemble a snapshot from the
// repositories for on-demand requests; BuildFeed itself stays pure.
type FeedService struct {
	leaderboard *LeaderboardService
	comparisons *ComparisonService

	stats domain.StatsRepository
	users domain.UserRepository
	prefs domain.PreferencesRepository
}

func NewFeedService(stats domain.StatsRepository, users domain.UserRepository, prefs domain.PreferencesRepository) *FeedService {
	return &FeedService{
		leaderboard: NewLeaderboardService(),
		comparisons: NewComparisonService(),
		stats:       stats,
		users:       users,
		prefs:       prefs,
	}
}

// BuildFeed computes the full feed for one snapshot: leaderboard entries
// for the favorite habits first, then one entry per followed user.
func (s *FeedService) BuildFeed(snap domain.Snapshot) ([]domain.FeedItem, error) {
	boards, err := s.leaderboard.Build(snap)
	if err != nil {
		return nil, err
	}

	comparisons, err := s.comparisons.Build(snap)
	if err != nil {
		return nil, err
	}

	items := make([]domain.FeedItem, 0, len(boards)+len(comparisons))
	for _, entry := range boards {
		items = append(items, domain.NewLeaderboardItem(entry))
	}
	for _, entry := range comparisons {
		items = append(items, domain.NewFollowedUserItem(entry))
	}

	return items, nil
}

// SnapshotFor fetches everything the engine needs for one user. Intended
// for on-demand feed requests; the refresh worker assembles its own
// snapshots from cached slices instead.
func (s *FeedService) SnapshotFor(ctx context.Context, userID string) (domain.Snapshot, error) {
	currentUser, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	usersByID, err := s.users.ListAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	combined, err := s.stats.Combined(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	favorites, err := s.prefs.FavoriteHabits(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	followed, err := s.prefs.FollowedUserIDs(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		CurrentUser:        currentUser,
		UsersByID:          usersByID,
		HabitStatistics:    combined.HabitStatistics,
		UserStatistics:     combined.UserStatistics,
		FavoriteHabitNames: favorites,
		FollowedUserIDs:    followed,
	}, nil
}

// FeedFor is SnapshotFor followed by BuildFeed.
func (s *FeedService) FeedFor(ctx context.Context, userID string) ([]domain.FeedItem, error) {
	snap, err := s.SnapshotFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.BuildFeed(snap)
}
