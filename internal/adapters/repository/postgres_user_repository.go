package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vpisarenko/habitboard/internal/core/domain"
)

// isUniqueViolation recognizes postgres error 23505 from either driver
// the DSN may select (pgx stdlib or lib/pq).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

type userRow struct {
	ID         string          `db:"id"`
	Name       string          `db:"name"`
	Hue        sql.NullFloat64 `db:"hue"`
	Saturation sql.NullFloat64 `db:"saturation"`
	Brightness sql.NullFloat64 `db:"brightness"`
	Bio        sql.NullString  `db:"bio"`
}

func (r userRow) toDomain() domain.User {
	u := domain.User{ID: r.ID, Name: r.Name}

	if r.Hue.Valid {
		u.Color = &domain.Color{
			Hue:        r.Hue.Float64,
			Saturation: r.Saturation.Float64,
			Brightness: r.Brightness.Float64,
		}
	}
	if r.Bio.Valid {
		bio := r.Bio.String
		u.Bio = &bio
	}

	return u
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (id, name, hue, saturation, brightness, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var hue, saturation, brightness interface{}
	if user.Color != nil {
		hue, saturation, brightness = user.Color.Hue, user.Color.Saturation, user.Color.Brightness
	}

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, hue, saturation, brightness, user.Bio)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserNameTaken
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT id, name, hue, saturation, brightness, bio FROM users WHERE id = $1`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("repository: get user failed: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) (map[string]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT id, name, hue, saturation, brightness, bio FROM users ORDER BY name`

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("repository: list users failed: %w", err)
	}

	users := make(map[string]domain.User, len(rows))
	for _, row := range rows {
		users[row.ID] = row.toDomain()
	}

	return users, nil
}
