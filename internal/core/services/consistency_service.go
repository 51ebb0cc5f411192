package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/scoring"
)

const dayLayout = "2006-01-02"

// ConsistencyService feeds stored check-ins to the scoring engine and
// returns display-ready reports.
type ConsistencyService struct {
	goals    domain.GoalRepository
	checkIns domain.CheckInRepository
	users    domain.UserRepository
	cache    domain.ReportCache
	cfg      scoring.ScoringConfig
	now      func() time.Time
	rand     scoring.RandSource
}

type ConsistencyOption func(*ConsistencyService)

func WithReportCache(c domain.ReportCache) ConsistencyOption {
	return func(s *ConsistencyService) { s.cache = c }
}

func WithNow(now func() time.Time) ConsistencyOption {
	return func(s *ConsistencyService) { s.now = now }
}

func WithRandSource(r scoring.RandSource) ConsistencyOption {
	return func(s *ConsistencyService) { s.rand = r }
}

func NewConsistencyService(goals domain.GoalRepository, checkIns domain.CheckInRepository, users domain.UserRepository, cfg scoring.ScoringConfig, opts ...ConsistencyOption) *ConsistencyService {
	s := &ConsistencyService{
		goals:    goals,
		checkIns: checkIns,
		users:    users,
		cfg:      cfg.Normalize(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// engineFor scores in the user's calendar and with the goal's own monthly
// target when it has one.
func (s *ConsistencyService) engineFor(user *domain.User, goal *domain.Goal) *scoring.Engine {
	cfg := s.cfg
	if goal.MonthlyTarget > 0 {
		cfg.MonthlyTarget = goal.MonthlyTarget
	}
	return scoring.NewEngine(
		scoring.WithConfig(cfg),
		scoring.WithClock(s.now),
		scoring.WithLocation(user.Location()),
		scoring.WithRand(s.rand),
	)
}

func (s *ConsistencyService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	return user, err
}

func (s *ConsistencyService) Report(ctx context.Context, input domain.ReportInput) (*domain.ConsistencyReport, error) {
	goal, err := s.goals.GetByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.loadUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return s.report(ctx, user, goal, input.StartDate)
}

func (s *ConsistencyService) report(ctx context.Context, user *domain.User, goal *domain.Goal, start time.Time) (*domain.ConsistencyReport, error) {
	engine := s.engineFor(user, goal)
	today := engine.Today()
	dayKey := today.Format(dayLayout)
	cacheable := start.IsZero() && s.cache != nil

	if cacheable {
		cached, err := s.cache.Get(ctx, goal.ID)
		if err == nil && cached.Day == dayKey {
			return cached, nil
		}
		if err != nil && !errors.Is(err, domain.ErrReportNotCached) {
			log.Printf("[CONSISTENCY] Cache read failed for goal %s: %v", goal.ID, err)
		}
	}

	if start.IsZero() {
		start = defaultStart(goal.StartDate.In(engine.Location()), today, s.cfg.SpanDays)
	} else {
		start = onCalendarDay(start, engine.Location())
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, engine.Location())
	from := scoring.StartOfDay(start.In(engine.Location()))
	if monthStart.Before(from) {
		from = monthStart
	}

	checkIns, err := s.checkIns.ListByGoalID(ctx, goal.ID, from, today)
	if err != nil {
		return nil, err
	}

	metrics, display := engine.Score(scoring.AggregateInput{
		CompletionDates: domain.CompletionDates(checkIns),
		StartDate:       start,
		Intensity:       scoring.IntensityFor(goal.DurationMinutes, goal.Difficulty),
		FlexUsed:        goal.FlexUsed,
	})

	report := &domain.ConsistencyReport{
		GoalID:      goal.ID,
		GoalTitle:   goal.Title,
		Day:         dayKey,
		GeneratedAt: today.UTC(),
		Metrics:     metrics,
		Display:     display,
	}

	if cacheable {
		if err := s.cache.Set(ctx, report); err != nil {
			log.Printf("[CONSISTENCY] Cache write failed for goal %s: %v", goal.ID, err)
		}
	}

	return report, nil
}

// onCalendarDay keeps only the calendar date of t and places it at midnight
// in loc. A bare date parsed as UTC midnight stays on the same day.
func onCalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// defaultStart opens the series spanDays before today, but never before the
// goal existed.
func defaultStart(goalStart, today time.Time, spanDays int) time.Time {
	start := scoring.StartOfDay(today.AddDate(0, 0, -(spanDays - 1)))
	if !goalStart.IsZero() && goalStart.After(start) {
		return scoring.StartOfDay(goalStart)
	}
	return start
}

// Overview reports on every active goal of the user.
func (s *ConsistencyService) Overview(ctx context.Context, userID string) (*domain.ConsistencyOverview, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &domain.ConsistencyOverview{
		UserID:  userID,
		Day:     s.now().In(user.Location()).Format(dayLayout),
		Reports: make([]*domain.ConsistencyReport, 0, len(goals)),
	}

	momentumSum := 0
	for _, g := range goals {
		if g.ArchivedAt != nil {
			continue
		}

		report, err := s.report(ctx, user, g, time.Time{})
		if err != nil {
			return nil, err
		}

		overview.Reports = append(overview.Reports, report)
		momentumSum += report.Metrics.Momentum.Score
		if report.Metrics.Recovery.IsComeback {
			overview.Comebacks++
		}
	}

	overview.TotalGoals = len(overview.Reports)
	if overview.TotalGoals > 0 {
		overview.AvgMomentum = momentumSum / overview.TotalGoals
	}

	return overview, nil
}
