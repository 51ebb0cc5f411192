package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

var (
	_ domain.CheckInRepository = (*PostgresCheckInRepository)(nil)

	ErrDanglingCheckIn = errors.New("referenced goal or user does not exist")
)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

func (r *PostgresCheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO check_ins (
			id, goal_id, user_id,
			completed_at, note,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :goal_id, :user_id,
			:completed_at, :note,
			:version, :created_at, :updated_at, :deleted_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		switch pgCode(err) {
		case pgForeignKeyViolation:
			return ErrDanglingCheckIn
		case pgUniqueViolation:
			return domain.ErrCheckInConflict
		}
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (r *PostgresCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	var c domain.CheckIn
	query := `SELECT * FROM check_ins WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCheckInRepository) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE goal_id = $1
		  AND completed_at >= $2
		  AND completed_at <= $3
		  AND deleted_at IS NULL
		ORDER BY completed_at ASC`

	if err := r.db.SelectContext(ctx, &checkIns, query, goalID, from, to); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE check_ins
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3
		  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res, domain.ErrCheckInNotFound)
}

func (r *PostgresCheckInRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE user_id = $1
		  AND updated_at > $2
		ORDER BY updated_at ASC`

	if err := r.db.SelectContext(ctx, &checkIns, query, userID, since); err != nil {
		return nil, err
	}
	return checkIns, nil
}
