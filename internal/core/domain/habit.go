package domain

import (
	"errors"
	"strings"
)

var (
	ErrHabitNameEmpty    = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong  = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInfoTooLong  = errors.New("habit info is too long (max 500 chars)")
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
	ErrInvalidColor      = errors.New("invalid color (components must be within 0..1)")
)

const (
	MaxHabitNameLen = 100
	MaxHabitInfoLen = 500
)

// Color is an HSB triple with every component in [0, 1].
type Color struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness float64 `json:"brightness"`
}

func (c Color) Validate() error {
	for _, v := range []float64{c.Hue, c.Saturation, c.Brightness} {
		if v < 0 || v > 1 {
			return ErrInvalidColor
		}
	}
	return nil
}

type Category struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// Habit is a catalog entry shared by all users. The name is the unique
// key; statistics and log entries reference habits by name.
type Habit struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Info     string   `json:"info"`
}

func NewHabit(name string, category Category, info string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrHabitNameEmpty
	}
	if len(name) > MaxHabitNameLen {
		return Habit{}, ErrHabitNameTooLong
	}

	info = strings.TrimSpace(info)
	if len(info) > MaxHabitInfoLen {
		return Habit{}, ErrHabitInfoTooLong
	}

	if strings.TrimSpace(category.Name) == "" {
		return Habit{}, ErrCategoryNameEmpty
	}
	if err := category.Color.Validate(); err != nil {
		return Habit{}, err
	}

	return Habit{
		Name:     name,
		Category: category,
		Info:     info,
	}, nil
}

func (h Habit) Equal(other Habit) bool {
	return h.Name == other.Name
}
