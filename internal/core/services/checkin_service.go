package services

import (
	"context"
	"log"
	"time"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

// RecomputeQueue receives goals whose consistency snapshot went stale.
type RecomputeQueue interface {
	Enqueue(goalID string)
}

type CheckInService struct {
	repo     domain.CheckInRepository
	goalRepo domain.GoalRepository
	queue    RecomputeQueue
	reports  domain.ReportCache
}

// NewCheckInService accepts a nil queue or report cache.
func NewCheckInService(repo domain.CheckInRepository, goalRepo domain.GoalRepository, queue RecomputeQueue, reports domain.ReportCache) *CheckInService {
	return &CheckInService{
		repo:     repo,
		goalRepo: goalRepo,
		queue:    queue,
		reports:  reports,
	}
}

type CreateCheckInInput struct {
	GoalID      string
	UserID      string
	CompletedAt time.Time
	Note        string
}

// changed drops the cached report right away and schedules a recompute.
// The queue may drop the job, so it cannot be relied on for the report.
func (s *CheckInService) changed(ctx context.Context, goalID string) {
	if s.reports != nil {
		if err := s.reports.Invalidate(ctx, goalID); err != nil {
			log.Printf("[CONSISTENCY] Failed to invalidate report for goal %s: %v", goalID, err)
		}
	}
	if s.queue != nil {
		s.queue.Enqueue(goalID)
	}
}

func (s *CheckInService) ownedGoal(ctx context.Context, goalID, userID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return goal, nil
}

func (s *CheckInService) CheckIn(ctx context.Context, input CreateCheckInInput) (*domain.CheckIn, error) {
	if input.CompletedAt.IsZero() {
		input.CompletedAt = time.Now()
	}

	checkIn := domain.NewCheckIn(input.GoalID, input.UserID, input.CompletedAt, input.Note)
	if err := checkIn.Validate(); err != nil {
		return nil, err
	}

	goal, err := s.ownedGoal(ctx, checkIn.GoalID, checkIn.UserID)
	if err != nil {
		return nil, err
	}
	if goal.ArchivedAt != nil {
		return nil, domain.ErrGoalArchived
	}

	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	s.changed(ctx, checkIn.GoalID)

	return checkIn, nil
}

func (s *CheckInService) GetByID(ctx context.Context, id, userID string) (*domain.CheckIn, error) {
	checkIn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkIn.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return checkIn, nil
}

func (s *CheckInService) ListByGoalID(ctx context.Context, goalID, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	if _, err := s.ownedGoal(ctx, goalID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByGoalID(ctx, goalID, from, to)
}

// Undo soft-deletes a check-in, e.g. a completion tapped by mistake.
func (s *CheckInService) Undo(ctx context.Context, id, userID string) error {
	checkIn, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.changed(ctx, checkIn.GoalID)

	return nil
}

func (s *CheckInService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.CheckIn, error) {
	return s.repo.GetChanges(ctx, userID, since)
}
