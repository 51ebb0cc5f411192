package domain

import (
	"context"
	"time"
)

type MilestoneKind string

const (
	MilestoneComeback      MilestoneKind = "comeback"
	MilestoneFlexDayEarned MilestoneKind = "flex_day_earned"
	MilestonePerfectWindow MilestoneKind = "perfect_window"
)

type Milestone struct {
	Kind       MilestoneKind `json:"kind"`
	GoalID     string        `json:"goal_id"`
	UserID     string        `json:"user_id"`
	Value      int           `json:"value"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// MilestonePublisher forwards milestones to whatever feeds the social
// layer. Publishing is best effort.
type MilestonePublisher interface {
	Publish(ctx context.Context, m Milestone) error
}
