package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrGoalConflict    = errors.New("goal version conflict")
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrCheckInConflict = errors.New("check-in version conflict")
	ErrReportNotCached = errors.New("consistency report not cached")
)

type GoalRepository interface {
	// Create persists a new goal.
	Create(ctx context.Context, goal *Goal) error

	// GetByID retrieves a live (non-deleted) goal.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// ListByUserID returns the user's live goals, archived ones included.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	// Update modifies a goal. Implementations must reject stale versions
	// with ErrGoalConflict.
	Update(ctx context.Context, goal *Goal) error

	// Delete soft-deletes the goal so sync clients can observe it.
	Delete(ctx context.Context, id string) error

	// UpdateSnapshot stores worker-computed run and flex figures, stamped
	// with the owner's local day, without touching the client-owned version.
	UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error
}

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *CheckIn) error

	GetByID(ctx context.Context, id string) (*CheckIn, error)

	// Delete performs a soft delete. userID must own the check-in.
	Delete(ctx context.Context, id string, userID string) error

	// ListByGoalID returns live check-ins with CompletedAt in [from, to].
	ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*CheckIn, error)

	// GetChanges returns creations and soft deletes after since, for
	// offline-first clients.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*CheckIn, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// ReportCache stores formatted reports keyed by goal. Get returns
// ErrReportNotCached on a miss.
type ReportCache interface {
	Get(ctx context.Context, goalID string) (*ConsistencyReport, error)
	Set(ctx context.Context, report *ConsistencyReport) error
	Invalidate(ctx context.Context, goalID string) error
}
