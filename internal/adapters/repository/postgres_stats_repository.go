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

// PostgresStatsRepository derives statistics from the habit_logs table.
// It also owns log inserts, so the statistics and the events they
// aggregate live behind one adapter.
type PostgresStatsRepository struct {
	db *sqlx.DB
}

func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

type statRow struct {
	HabitName          string          `db:"habit_name"`
	CategoryName       string          `db:"category_name"`
	CategoryHue        float64         `db:"category_hue"`
	CategorySaturation float64         `db:"category_saturation"`
	CategoryBrightness float64         `db:"category_brightness"`
	Info               string          `db:"info"`
	UserID             string          `db:"user_id"`
	UserName           string          `db:"user_name"`
	Hue                sql.NullFloat64 `db:"hue"`
	Saturation         sql.NullFloat64 `db:"saturation"`
	Brightness         sql.NullFloat64 `db:"brightness"`
	Bio                sql.NullString  `db:"bio"`
	Count              int             `db:"count"`
}

func (r statRow) habit() domain.Habit {
	return habitRow{
		Name:               r.HabitName,
		CategoryName:       r.CategoryName,
		CategoryHue:        r.CategoryHue,
		CategorySaturation: r.CategorySaturation,
		CategoryBrightness: r.CategoryBrightness,
		Info:               r.Info,
	}.toDomain()
}

func (r statRow) user() domain.User {
	return userRow{
		ID:         r.UserID,
		Name:       r.UserName,
		Hue:        r.Hue,
		Saturation: r.Saturation,
		Brightness: r.Brightness,
		Bio:        r.Bio,
	}.toDomain()
}

const statRowsQuery = `
	SELECT l.habit_name,
	       h.category_name, h.category_hue, h.category_saturation, h.category_brightness, h.info,
	       u.id AS user_id, u.name AS user_name, u.hue, u.saturation, u.brightness, u.bio,
	       COUNT(*) AS count
	FROM habit_logs l
	JOIN habits h ON h.name = l.habit_name
	JOIN users u ON u.id = l.user_id
	%s
	GROUP BY l.habit_name,
	         h.category_name, h.category_hue, h.category_saturation, h.category_brightness, h.info,
	         u.id, u.name, u.hue, u.saturation, u.brightness, u.bio
	ORDER BY l.habit_name, u.name`

func selectStatRows(ctx context.Context, ext sqlx.ExtContext, whereColumn string, filter []string) ([]statRow, error) {
	var rows []statRow

	if len(filter) == 0 {
		query := fmt.Sprintf(statRowsQuery, "")
		if err := sqlx.SelectContext(ctx, ext, &rows, query); err != nil {
			return nil, fmt.Errorf("repository: statistics query failed: %w", err)
		}
		return rows, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(statRowsQuery, "WHERE "+whereColumn+" IN (?)"), filter)
	if err != nil {
		return nil, fmt.Errorf("repository: statistics filter failed: %w", err)
	}
	query = ext.Rebind(query)

	if err := sqlx.SelectContext(ctx, ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("repository: statistics query failed: %w", err)
	}
	return rows, nil
}

// habitStats groups the flat rows per habit and merges in catalog
// entries without any logs, so an unlogged habit shows up with an empty
// board instead of vanishing.
func habitStats(ctx context.Context, ext sqlx.ExtContext, names []string) ([]domain.HabitStatistics, error) {
	rows, err := selectStatRows(ctx, ext, "l.habit_name", names)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var stats []domain.HabitStatistics

	for _, row := range rows {
		i, ok := index[row.HabitName]
		if !ok {
			i = len(stats)
			index[row.HabitName] = i
			stats = append(stats, domain.HabitStatistics{Habit: row.habit()})
		}
		stats[i].UserCounts = append(stats[i].UserCounts, domain.UserCount{User: row.user(), Count: row.Count})
	}

	var catalog []habitRow
	catalogQuery := `SELECT ` + habitColumns + ` FROM habits ORDER BY name`
	if len(names) == 0 {
		if err := sqlx.SelectContext(ctx, ext, &catalog, catalogQuery); err != nil {
			return nil, fmt.Errorf("repository: habit catalog query failed: %w", err)
		}
	} else {
		query, args, err := sqlx.In(`SELECT `+habitColumns+` FROM habits WHERE name IN (?) ORDER BY name`, names)
		if err != nil {
			return nil, fmt.Errorf("repository: habit catalog filter failed: %w", err)
		}
		if err := sqlx.SelectContext(ctx, ext, &catalog, ext.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("repository: habit catalog query failed: %w", err)
		}
	}

	for _, row := range catalog {
		if _, ok := index[row.Name]; !ok {
			stats = append(stats, domain.HabitStatistics{Habit: row.toDomain()})
		}
	}

	return stats, nil
}

func userStats(ctx context.Context, ext sqlx.ExtContext, ids []string) ([]domain.UserStatistics, error) {
	rows, err := selectStatRows(ctx, ext, "l.user_id", ids)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var stats []domain.UserStatistics

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(stats)
			index[row.UserID] = i
			stats = append(stats, domain.UserStatistics{User: row.user()})
		}
		stats[i].HabitCounts = append(stats[i].HabitCounts, domain.HabitCount{Habit: row.habit(), Count: row.Count})
	}

	return stats, nil
}

func (r *PostgresStatsRepository) HabitStats(ctx context.Context, names []string) ([]domain.HabitStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return habitStats(ctx, r.db, names)
}

func (r *PostgresStatsRepository) UserStats(ctx context.Context, ids []string) ([]domain.UserStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return userStats(ctx, r.db, ids)
}

// Combined reads both views inside one repeatable-read transaction, so
// they reflect a single snapshot of the log table.
func (r *PostgresStatsRepository) Combined(ctx context.Context) (domain.CombinedStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return domain.CombinedStatistics{}, fmt.Errorf("repository: begin combined read failed: %w", err)
	}
	defer tx.Rollback()

	users, err := userStats(ctx, tx, nil)
	if err != nil {
		return domain.CombinedStatistics{}, err
	}

	habits, err := habitStats(ctx, tx, nil)
	if err != nil {
		return domain.CombinedStatistics{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.CombinedStatistics{}, fmt.Errorf("repository: combined read commit failed: %w", err)
	}

	return domain.CombinedStatistics{UserStatistics: users, HabitStatistics: habits}, nil
}

// LeadingStats returns the user's counts restricted to habits where they
// share the maximum count. Ties count as leading.
func (r *PostgresStatsRepository) LeadingStats(ctx context.Context, userID string) (domain.UserStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var row userRow
	userQuery := `SELECT id, name, hue, saturation, brightness, bio FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, userQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserStatistics{}, domain.ErrUserNotFound
		}
		return domain.UserStatistics{}, fmt.Errorf("repository: leading stats user lookup failed: %w", err)
	}

	query := `
		WITH counts AS (
			SELECT habit_name, user_id, COUNT(*) AS count
			FROM habit_logs
			GROUP BY habit_name, user_id
		), leaders AS (
			SELECT habit_name, MAX(count) AS top
			FROM counts
			GROUP BY habit_name
		)
		SELECT c.habit_name,
		       h.category_name, h.category_hue, h.category_saturation, h.category_brightness, h.info,
		       c.count
		FROM counts c
		JOIN leaders t ON t.habit_name = c.habit_name AND c.count = t.top
		JOIN habits h ON h.name = c.habit_name
		WHERE c.user_id = $1
		ORDER BY c.habit_name`

	var rows []struct {
		HabitName          string  `db:"habit_name"`
		CategoryName       string  `db:"category_name"`
		CategoryHue        float64 `db:"category_hue"`
		CategorySaturation float64 `db:"category_saturation"`
		CategoryBrightness float64 `db:"category_brightness"`
		Info               string  `db:"info"`
		Count              int     `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return domain.UserStatistics{}, fmt.Errorf("repository: leading stats query failed: %w", err)
	}

	stats := domain.UserStatistics{User: row.toDomain()}
	for _, lr := range rows {
		stats.HabitCounts = append(stats.HabitCounts, domain.HabitCount{
			Habit: habitRow{
				Name:               lr.HabitName,
				CategoryName:       lr.CategoryName,
				CategoryHue:        lr.CategoryHue,
				CategorySaturation: lr.CategorySaturation,
				CategoryBrightness: lr.CategoryBrightness,
				Info:               lr.Info,
			}.toDomain(),
			Count: lr.Count,
		})
	}

	return stats, nil
}

// Insert records one log event.
func (r *PostgresStatsRepository) Insert(ctx context.Context, logged domain.LoggedHabit) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `INSERT INTO habit_logs (user_id, habit_name, logged_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, logged.UserID, logged.HabitName, logged.Timestamp); err != nil {
		return fmt.Errorf("repository: insert logged habit failed: %w", err)
	}

	return nil
}
