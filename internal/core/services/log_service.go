package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

type LogService struct {
	logs   domain.LogRepository
	habits domain.HabitRepository
	users  domain.UserRepository
}

func NewLogService(logs domain.LogRepository, habits domain.HabitRepository, users domain.UserRepository) *LogService {
	return &LogService{
		logs:   logs,
		habits: habits,
		users:  users,
	}
}

type LogHabitInput struct {
	UserID    string
	HabitName string
	Timestamp time.Time
}

// Log validates and records one habit log event. A zero timestamp means
// "now".
func (s *LogService) Log(ctx context.Context, input LogHabitInput) (*domain.LoggedHabit, error) {
	logged := domain.LoggedHabit{
		UserID:    input.UserID,
		HabitName: input.HabitName,
		Timestamp: input.Timestamp,
	}
	if logged.Timestamp.IsZero() {
		logged.Timestamp = time.Now().UTC()
	}

	if err := logged.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, logged.UserID); err != nil {
		return nil, err
	}

	if _, err := s.habits.GetByName(ctx, logged.HabitName); err != nil {
		if err == domain.ErrHabitNotFound {
			return nil, fmt.Errorf("%w: %q", domain.ErrLoggedHabitUnknownHabit, logged.HabitName)
		}
		return nil, err
	}

	if err := s.logs.Insert(ctx, logged); err != nil {
		return nil, err
	}

	return &logged, nil
}
