package services

import (
	"context"
	"fmt"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
	}
}

type CreateGoalInput struct {
	UserID          string
	Title           string
	Description     string
	Color           string
	Icon            string
	DurationMinutes int
	Difficulty      string
	MonthlyTarget   int
}

type UpdateGoalInput struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	Color           string
	Icon            string
	DurationMinutes *int
	Difficulty      string
	MonthlyTarget   *int
	Version         int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func mergeInt(newVal *int, oldVal int) int {
	if newVal == nil {
		return oldVal
	}
	return *newVal
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, domain.GoalAttributes{
		Title:           input.Title,
		Description:     input.Description,
		Color:           input.Color,
		Icon:            input.Icon,
		DurationMinutes: input.DurationMinutes,
		Difficulty:      input.Difficulty,
		MonthlyTarget:   input.MonthlyTarget,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Get(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && goal.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrGoalConflict, input.Version, goal.Version)
	}

	err = goal.Update(domain.GoalAttributes{
		Title:           mergeString(input.Title, goal.Title),
		Description:     mergeString(input.Description, goal.Description),
		Color:           mergeString(input.Color, goal.Color),
		Icon:            mergeString(input.Icon, goal.Icon),
		DurationMinutes: mergeInt(input.DurationMinutes, goal.DurationMinutes),
		Difficulty:      mergeString(input.Difficulty, goal.Difficulty),
		MonthlyTarget:   mergeInt(input.MonthlyTarget, goal.MonthlyTarget),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Archive(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	goal.Archive()
	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
