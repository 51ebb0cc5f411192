package domain

import (
	"time"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

type ConsistencyReport struct {
	GoalID      string                   `json:"goal_id"`
	GoalTitle   string                   `json:"goal_title"`
	Day         string                   `json:"day"`
	GeneratedAt time.Time                `json:"generated_at"`
	Metrics     scoring.AggregateMetrics `json:"metrics"`
	Display     scoring.Display          `json:"display"`
}

type ConsistencyOverview struct {
	UserID      string               `json:"user_id"`
	Day         string               `json:"day"`
	TotalGoals  int                  `json:"total_goals"`
	Comebacks   int                  `json:"comebacks"`
	AvgMomentum int                  `json:"average_momentum"`
	Reports     []*ConsistencyReport `json:"reports"`
}

type ReportInput struct {
	GoalID string
	UserID string
	// StartDate overrides the default series start. Only its calendar date
	// is used, read in the user's timezone. Zero means default.
	StartDate time.Time
}
