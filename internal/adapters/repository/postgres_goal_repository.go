package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unity-app/unity-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.GoalRepository = (*PostgresGoalRepository)(nil)

const goalColumns = `
	id, user_id, title, description, color, icon,
	duration_minutes, difficulty, monthly_target, flex_used,
	current_run, longest_run, flex_earned, snapshot_day,
	start_date, archived_at, version, created_at, updated_at, deleted_at`

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, g *domain.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, title, description, color, icon,
			duration_minutes, difficulty, monthly_target, flex_used,
			current_run, longest_run, flex_earned, snapshot_day,
			start_date, archived_at, version, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :color, :icon,
			:duration_minutes, :difficulty, :monthly_target, :flex_used,
			:current_run, :longest_run, :flex_earned, :snapshot_day,
			:start_date, :archived_at, 1, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, g); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	g.Version = 1
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var g domain.Goal
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &g, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	query := `
		SELECT ` + goalColumns + ` FROM goals
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, g *domain.Goal) error {
	query := `
		UPDATE goals SET
			title=$1, description=$2, color=$3, icon=$4,
			duration_minutes=$5, difficulty=$6, monthly_target=$7, flex_used=$8,
			archived_at=$9,
			updated_at=NOW(), version = version + 1
		WHERE id=$10 AND version=$11 AND deleted_at IS NULL
		RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		g.Title, g.Description, g.Color, g.Icon,
		g.DurationMinutes, g.Difficulty, g.MonthlyTarget, g.FlexUsed,
		g.ArchivedAt,
		g.ID, g.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			exists, checkErr := r.exists(ctx, g.ID)
			if checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if !exists {
				return domain.ErrGoalNotFound
			}
			return domain.ErrGoalConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	g.Version = newVersion
	g.UpdatedAt = newUpdatedAt
	return nil
}

// UpdateSnapshot leaves version alone so a background recompute never
// conflicts with a client edit.
func (r *PostgresGoalRepository) UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error {
	query := `
		UPDATE goals
		SET current_run = $1, longest_run = $2, flex_earned = $3, snapshot_day = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, current, longest, flexEarned, day, id)
	if err != nil {
		return fmt.Errorf("snapshot update failed: %w", err)
	}
	return expectOneRow(res, domain.ErrGoalNotFound)
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE goals
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return expectOneRow(res, domain.ErrGoalNotFound)
}

func (r *PostgresGoalRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM goals WHERE id = $1 AND deleted_at IS NULL`, id)
	return count > 0, err
}

func expectOneRow(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
