package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	Name               string  `db:"name"`
	CategoryName       string  `db:"category_name"`
	CategoryHue        float64 `db:"category_hue"`
	CategorySaturation float64 `db:"category_saturation"`
	CategoryBrightness float64 `db:"category_brightness"`
	Info               string  `db:"info"`
}

func (r habitRow) toDomain() domain.Habit {
	return domain.Habit{
		Name: r.Name,
		Category: domain.Category{
			Name: r.CategoryName,
			Color: domain.Color{
				Hue:        r.CategoryHue,
				Saturation: r.CategorySaturation,
				Brightness: r.CategoryBrightness,
			},
		},
		Info: r.Info,
	}
}

const habitColumns = `name, category_name, category_hue, category_saturation, category_brightness, info`

func (r *PostgresHabitRepository) Create(ctx context.Context, habit domain.Habit) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		habit.Name, habit.Category.Name,
		habit.Category.Color.Hue, habit.Category.Color.Saturation, habit.Category.Color.Brightness,
		habit.Info,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHabitAlreadyExists
		}
		return fmt.Errorf("repository: create habit failed: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByName(ctx context.Context, name string) (domain.Habit, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + habitColumns + ` FROM habits WHERE name = $1`

	var row habitRow
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Habit{}, domain.ErrHabitNotFound
		}
		return domain.Habit{}, fmt.Errorf("repository: get habit failed: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresHabitRepository) ListAll(ctx context.Context) (map[string]domain.Habit, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + habitColumns + ` FROM habits ORDER BY name`

	var rows []habitRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("repository: list habits failed: %w", err)
	}

	habits := make(map[string]domain.Habit, len(rows))
	for _, row := range rows {
		habits[row.Name] = row.toDomain()
	}

	return habits, nil
}
