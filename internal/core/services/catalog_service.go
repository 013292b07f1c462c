package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// CatalogService manages the shared habit catalog and the user roster.
type CatalogService struct {
	habits domain.HabitRepository
	users  domain.UserRepository
}

func NewCatalogService(habits domain.HabitRepository, users domain.UserRepository) *CatalogService {
	return &CatalogService{
		habits: habits,
		users:  users,
	}
}

type CreateHabitInput struct {
	Name     string
	Category domain.Category
	Info     string
}

type RegisterUserInput struct {
	Name  string
	Color *domain.Color
	Bio   string
}

func (s *CatalogService) CreateHabit(ctx context.Context, input CreateHabitInput) (domain.Habit, error) {
	habit, err := domain.NewHabit(input.Name, input.Category, input.Info)
	if err != nil {
		return domain.Habit{}, err
	}

	if err := s.habits.Create(ctx, habit); err != nil {
		return domain.Habit{}, fmt.Errorf("catalog service: failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *CatalogService) GetHabit(ctx context.Context, name string) (domain.Habit, error) {
	return s.habits.GetByName(ctx, name)
}

// ListHabits returns the catalog sorted by name.
func (s *CatalogService) ListHabits(ctx context.Context) ([]domain.Habit, error) {
	byName, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	habits := make([]domain.Habit, 0, len(byName))
	for _, h := range byName {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].Name < habits[j].Name
	})

	return habits, nil
}

func (s *CatalogService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Name, input.Color, input.Bio)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("catalog service: failed to create user: %w", err)
	}

	return user, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns all registered users sorted by name, ID as tie-break.
func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	byID, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(byID))
	for _, u := range byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Less(users[j])
	})

	return users, nil
}
