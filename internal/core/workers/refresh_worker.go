package workers

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

type StatsFetcher interface {
	Combined(ctx context.Context) (domain.CombinedStatistics, error)
}

type UserLister interface {
	ListAll(ctx context.Context) (map[string]domain.User, error)
}

type HabitLister interface {
	ListAll(ctx context.Context) (map[string]domain.Habit, error)
}

type PreferencesReader interface {
	FavoriteHabits(ctx context.Context, userID string) ([]string, error)
	FollowedUserIDs(ctx context.Context, userID string) ([]string, error)
}

type FeedBuilder interface {
	BuildFeed(snap domain.Snapshot) ([]domain.FeedItem, error)
}

// model is the worker's cached view of the remote resources. Each slice
// is replaced wholesale by its own fetch; a failed fetch leaves its
// slice alone, so the feed degrades per resource instead of per cycle.
type model struct {
	usersByID       map[string]domain.User
	habitsByName    map[string]domain.Habit
	habitStatistics []domain.HabitStatistics
	userStatistics  []domain.UserStatistics
}

// RefreshWorker polls the data layer on a fixed interval and keeps the
// active user's feed current. Each resource is fetched under its own
// context; a new cycle's fetch cancels the previous in-flight fetch of
// the same resource, so only the most recent request can land. The feed
// itself is recomputed from a complete snapshot and swapped atomically.
type RefreshWorker struct {
	stats  StatsFetcher
	users  UserLister
	habits HabitLister
	prefs  PreferencesReader
	feed   FeedBuilder

	activeUserID string
	interval     time.Duration

	mu      sync.RWMutex
	model   model
	current []domain.FeedItem

	cancelMu sync.Mutex
	cancels  map[string]context.CancelFunc
}

func NewRefreshWorker(stats StatsFetcher, users UserLister, habits HabitLister, prefs PreferencesReader, feed FeedBuilder, activeUserID string, interval time.Duration) *RefreshWorker {
	if interval <= 0 {
		interval = time.Second
	}

	return &RefreshWorker{
		stats:        stats,
		users:        users,
		habits:       habits,
		prefs:        prefs,
		feed:         feed,
		activeUserID: activeUserID,
		interval:     interval,
		cancels:      make(map[string]context.CancelFunc),
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Refresh Worker started in background...")

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.RefreshNow(ctx)

		for {
			select {
			case <-ticker.C:
				w.RefreshNow(ctx)
			case <-ctx.Done():
				log.Println("Refresh Worker shutting down...")
				return
			}
		}
	}()
}

// RefreshNow launches one refresh cycle: three concurrent fetches, each
// superseding the previous in-flight fetch of its resource. It does not
// wait for them; every fetch rebuilds the feed as it lands.
func (w *RefreshWorker) RefreshNow(ctx context.Context) {
	w.launch(ctx, "combined-statistics", func(fctx context.Context) error {
		combined, err := w.stats.Combined(fctx)
		if err != nil {
			// The statistics slices go empty on a real failure so a stale
			// board is never rendered as current.
			w.mu.Lock()
			w.model.habitStatistics = nil
			w.model.userStatistics = nil
			w.mu.Unlock()
			return err
		}

		w.mu.Lock()
		w.model.habitStatistics = combined.HabitStatistics
		w.model.userStatistics = combined.UserStatistics
		w.mu.Unlock()
		return nil
	})

	w.launch(ctx, "users", func(fctx context.Context) error {
		users, err := w.users.ListAll(fctx)
		if err != nil {
			return err
		}

		w.mu.Lock()
		w.model.usersByID = users
		w.mu.Unlock()
		return nil
	})

	w.launch(ctx, "habits", func(fctx context.Context) error {
		habits, err := w.habits.ListAll(fctx)
		if err != nil {
			return err
		}

		w.mu.Lock()
		w.model.habitsByName = habits
		w.mu.Unlock()
		return nil
	})
}

func (w *RefreshWorker) launch(ctx context.Context, resource string, fetch func(context.Context) error) {
	fctx, cancel := context.WithCancel(ctx)

	w.cancelMu.Lock()
	if prev := w.cancels[resource]; prev != nil {
		prev()
	}
	w.cancels[resource] = cancel
	w.cancelMu.Unlock()

	go func() {
		defer cancel()

		if err := fetch(fctx); err != nil {
			if errors.Is(err, context.Canceled) {
				// Superseded by a newer cycle: the result is discarded, and
				// the replacement fetch owns the rebuild.
				return
			}
			log.Printf("Refresh Worker: %s fetch failed: %v", resource, err)
		}

		w.rebuild(ctx)
	}()
}

// rebuild assembles a snapshot from the cached model and recomputes the
// feed. The published feed only changes when the engine completes, so
// readers never observe a partial result.
func (w *RefreshWorker) rebuild(ctx context.Context) {
	favorites, err := w.prefs.FavoriteHabits(ctx, w.activeUserID)
	if err != nil {
		log.Printf("Refresh Worker: favorites read failed: %v", err)
		favorites = nil
	}
	followed, err := w.prefs.FollowedUserIDs(ctx, w.activeUserID)
	if err != nil {
		log.Printf("Refresh Worker: followed read failed: %v", err)
		followed = nil
	}

	w.mu.RLock()
	currentUser, ok := w.model.usersByID[w.activeUserID]
	if !ok {
		currentUser = domain.User{ID: w.activeUserID, Name: w.activeUserID}
	}
	snap := domain.Snapshot{
		CurrentUser:        currentUser,
		UsersByID:          w.model.usersByID,
		HabitStatistics:    w.model.habitStatistics,
		UserStatistics:     w.model.userStatistics,
		FavoriteHabitNames: favorites,
		FollowedUserIDs:    followed,
	}
	w.mu.RUnlock()

	items, err := w.feed.BuildFeed(snap)
	if err != nil {
		log.Printf("Refresh Worker: feed rebuild failed, keeping previous feed: %v", err)
		return
	}

	w.mu.Lock()
	w.current = items
	w.mu.Unlock()
}

// Current returns the most recently published feed.
func (w *RefreshWorker) Current() []domain.FeedItem {
	w.mu.RLock()
	defer w.mu.RUnlock()

	items := make([]domain.FeedItem, len(w.current))
	copy(items, w.current)
	return items
}

// HabitsByName exposes the cached habit catalog for consumers that want
// the worker's view instead of a fresh query.
func (w *RefreshWorker) HabitsByName() map[string]domain.Habit {
	w.mu.RLock()
	defer w.mu.RUnlock()

	habits := make(map[string]domain.Habit, len(w.model.habitsByName))
	for name, h := range w.model.habitsByName {
		habits[name] = h
	}
	return habits
}
