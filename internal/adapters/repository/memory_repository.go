package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

var (
	_ domain.HabitRepository       = (*InMemoryHabitRepository)(nil)
	_ domain.UserRepository        = (*InMemoryUserRepository)(nil)
	_ domain.StatsRepository       = (*InMemoryStatsRepository)(nil)
	_ domain.LogRepository         = (*InMemoryStatsRepository)(nil)
	_ domain.PreferencesRepository = (*InMemoryPreferencesRepository)(nil)
)

// In-memory repositories backing tests and local development. They
// mirror the postgres adapters' behavior, including empty boards for
// habits nobody has logged.

type InMemoryHabitRepository struct {
	store map[string]domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[habit.Name]; exists {
		return domain.ErrHabitAlreadyExists
	}

	r.store[habit.Name] = habit
	return nil
}

func (r *InMemoryHabitRepository) GetByName(ctx context.Context, name string) (domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[name]
	if !ok {
		return domain.Habit{}, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *InMemoryHabitRepository) ListAll(ctx context.Context) (map[string]domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make(map[string]domain.Habit, len(r.store))
	for name, h := range r.store {
		habits[name] = h
	}
	return habits, nil
}

type InMemoryUserRepository struct {
	store map[string]domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.Name == user.Name {
			return domain.ErrUserNameTaken
		}
	}

	r.store[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) ListAll(ctx context.Context) (map[string]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make(map[string]domain.User, len(r.store))
	for id, u := range r.store {
		users[id] = u
	}
	return users, nil
}

// InMemoryStatsRepository aggregates recorded log events against the
// habit and user catalogs, the way the SQL adapter aggregates the
// habit_logs table.
type InMemoryStatsRepository struct {
	habits *InMemoryHabitRepository
	users  *InMemoryUserRepository

	mu   sync.RWMutex
	logs []domain.LoggedHabit
}

func NewInMemoryStatsRepository(habits *InMemoryHabitRepository, users *InMemoryUserRepository) *InMemoryStatsRepository {
	return &InMemoryStatsRepository{
		habits: habits,
		users:  users,
	}
}

func (r *InMemoryStatsRepository) Insert(ctx context.Context, logged domain.LoggedHabit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, logged)
	return nil
}

// counts returns logged tallies keyed by habit name then user ID.
func (r *InMemoryStatsRepository) counts() map[string]map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]int)
	for _, l := range r.logs {
		if out[l.HabitName] == nil {
			out[l.HabitName] = make(map[string]int)
		}
		out[l.HabitName][l.UserID]++
	}
	return out
}

func (r *InMemoryStatsRepository) HabitStats(ctx context.Context, names []string) ([]domain.HabitStatistics, error) {
	habits, err := r.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]struct{}, len(names))
	for _, name := range names {
		filter[name] = struct{}{}
	}

	counts := r.counts()

	var stats []domain.HabitStatistics
	for _, habit := range habits {
		if len(filter) > 0 {
			if _, ok := filter[habit.Name]; !ok {
				continue
			}
		}

		stat := domain.HabitStatistics{Habit: habit}
		for userID, n := range counts[habit.Name] {
			user, ok := users[userID]
			if !ok {
				continue
			}
			stat.UserCounts = append(stat.UserCounts, domain.UserCount{User: user, Count: n})
		}
		sort.Slice(stat.UserCounts, func(i, j int) bool {
			return stat.UserCounts[i].User.Less(stat.UserCounts[j].User)
		})

		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Habit.Name < stats[j].Habit.Name
	})

	return stats, nil
}

func (r *InMemoryStatsRepository) UserStats(ctx context.Context, ids []string) ([]domain.UserStatistics, error) {
	habits, err := r.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		filter[id] = struct{}{}
	}

	perUser := make(map[string][]domain.HabitCount)
	for habitName, byUser := range r.counts() {
		habit, ok := habits[habitName]
		if !ok {
			continue
		}
		for userID, n := range byUser {
			perUser[userID] = append(perUser[userID], domain.HabitCount{Habit: habit, Count: n})
		}
	}

	var stats []domain.UserStatistics
	for userID, habitCounts := range perUser {
		if len(filter) > 0 {
			if _, ok := filter[userID]; !ok {
				continue
			}
		}
		user, ok := users[userID]
		if !ok {
			continue
		}

		sort.Slice(habitCounts, func(i, j int) bool {
			return habitCounts[i].Habit.Name < habitCounts[j].Habit.Name
		})
		stats = append(stats, domain.UserStatistics{User: user, HabitCounts: habitCounts})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].User.Less(stats[j].User)
	})

	return stats, nil
}

func (r *InMemoryStatsRepository) Combined(ctx context.Context) (domain.CombinedStatistics, error) {
	users, err := r.UserStats(ctx, nil)
	if err != nil {
		return domain.CombinedStatistics{}, err
	}

	habits, err := r.HabitStats(ctx, nil)
	if err != nil {
		return domain.CombinedStatistics{}, err
	}

	return domain.CombinedStatistics{UserStatistics: users, HabitStatistics: habits}, nil
}

func (r *InMemoryStatsRepository) LeadingStats(ctx context.Context, userID string) (domain.UserStatistics, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserStatistics{}, err
	}

	habits, err := r.habits.ListAll(ctx)
	if err != nil {
		return domain.UserStatistics{}, err
	}

	stats := domain.UserStatistics{User: user}
	for habitName, byUser := range r.counts() {
		habit, ok := habits[habitName]
		if !ok {
			continue
		}

		mine, logged := byUser[userID]
		if !logged {
			continue
		}

		top := 0
		for _, n := range byUser {
			if n > top {
				top = n
			}
		}
		if mine == top {
			stats.HabitCounts = append(stats.HabitCounts, domain.HabitCount{Habit: habit, Count: mine})
		}
	}

	sort.Slice(stats.HabitCounts, func(i, j int) bool {
		return stats.HabitCounts[i].Habit.Name < stats.HabitCounts[j].Habit.Name
	})

	return stats, nil
}

type memberSet map[string]struct{}

// InMemoryPreferencesRepository mirrors the redis sets adapter.
type InMemoryPreferencesRepository struct {
	favorites map[string]memberSet
	following map[string]memberSet

	mu sync.RWMutex
}

func NewInMemoryPreferencesRepository() *InMemoryPreferencesRepository {
	return &InMemoryPreferencesRepository{
		favorites: make(map[string]memberSet),
		following: make(map[string]memberSet),
	}
}

func (r *InMemoryPreferencesRepository) FavoriteHabits(ctx context.Context, userID string) ([]string, error) {
	return r.members(r.favorites, userID), nil
}

func (r *InMemoryPreferencesRepository) ToggleFavorite(ctx context.Context, userID, habitName string) (bool, error) {
	return r.toggle(r.favorites, userID, habitName), nil
}

func (r *InMemoryPreferencesRepository) FollowedUserIDs(ctx context.Context, userID string) ([]string, error) {
	return r.members(r.following, userID), nil
}

func (r *InMemoryPreferencesRepository) ToggleFollow(ctx context.Context, userID, followedID string) (bool, error) {
	return r.toggle(r.following, userID, followedID), nil
}

func (r *InMemoryPreferencesRepository) members(sets map[string]memberSet, userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(sets[userID]))
	for member := range sets[userID] {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}

func (r *InMemoryPreferencesRepository) toggle(sets map[string]memberSet, userID, member string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := sets[userID]
	if set == nil {
		set = make(memberSet)
		sets[userID] = set
	}

	if _, ok := set[member]; ok {
		delete(set, member)
		return false
	}

	set[member] = struct{}{}
	return true
}
