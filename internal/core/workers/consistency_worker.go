package workers

import (
	"context"
	"log"
	"time"

	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/scoring"
)

const (
	queueSize  = 100
	jobTimeout = 10 * time.Second
)

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error
}

type CheckInRepository interface {
	ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Recorder observes the worker. The metrics adapter implements it.
type Recorder interface {
	JobDropped()
	JobProcessed(outcome string, elapsed time.Duration)
	MilestonePublished(kind domain.MilestoneKind)
}

type noopRecorder struct{}

func (noopRecorder) JobDropped() {}
func (noopRecorder) JobProcessed(string, time.Duration) {}
func (noopRecorder) MilestonePublished(domain.MilestoneKind) {}

const (
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
)

type ConsistencyJob struct {
	GoalID string
}

// ConsistencyWorker recomputes goal snapshots off the request path after
// check-ins change, and announces milestones.
type ConsistencyWorker struct {
	goals     GoalRepository
	checkIns  CheckInRepository
	users     UserRepository
	cache     domain.ReportCache
	publisher domain.MilestonePublisher
	recorder  Recorder
	cfg       scoring.ScoringConfig
	now       func() time.Time
	jobs      chan ConsistencyJob
}

type Option func(*ConsistencyWorker)

func WithReportCache(c domain.ReportCache) Option {
	return func(w *ConsistencyWorker) { w.cache = c }
}

func WithPublisher(p domain.MilestonePublisher) Option {
	return func(w *ConsistencyWorker) { w.publisher = p }
}

func WithRecorder(r Recorder) Option {
	return func(w *ConsistencyWorker) {
		if r != nil {
			w.recorder = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *ConsistencyWorker) {
		if now != nil {
			w.now = now
		}
	}
}

func NewConsistencyWorker(goals GoalRepository, checkIns CheckInRepository, users UserRepository, cfg scoring.ScoringConfig, opts ...Option) *ConsistencyWorker {
	w := &ConsistencyWorker{
		goals:    goals,
		checkIns: checkIns,
		users:    users,
		recorder: noopRecorder{},
		cfg:      cfg.Normalize(),
		now:      time.Now,
		jobs:     make(chan ConsistencyJob, queueSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ConsistencyWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Consistency worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Consistency worker shutting down")
				return
			}
		}
	}()
}

func (w *ConsistencyWorker) Enqueue(goalID string) {
	if w == nil {
		return
	}
	select {
	case w.jobs <- ConsistencyJob{GoalID: goalID}:
	default:
		w.recorder.JobDropped()
		log.Printf("[WORKER] Queue full, dropping job for goal %s", goalID)
	}
}

func (w *ConsistencyWorker) processJob(ctx context.Context, job ConsistencyJob) {
	started := time.Now()
	outcome := w.recompute(ctx, job)
	w.recorder.JobProcessed(outcome, time.Since(started))
}

func (w *ConsistencyWorker) recompute(parent context.Context, job ConsistencyJob) string {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	goal, err := w.goals.GetByID(ctx, job.GoalID)
	if err != nil {
		log.Printf("[WORKER] Error fetching goal %s: %v", job.GoalID, err)
		return OutcomeFailed
	}

	engine := scoring.NewEngine(
		scoring.WithConfig(w.cfg),
		scoring.WithClock(w.now),
		scoring.WithLocation(w.locationOf(ctx, goal.UserID)),
	)
	today := engine.Today()

	start := today.AddDate(0, 0, -(w.cfg.SpanDays - 1))
	if !goal.StartDate.IsZero() {
		start = goal.StartDate.In(engine.Location())
	}
	start = scoring.StartOfDay(start)

	checkIns, err := w.checkIns.ListByGoalID(ctx, goal.ID, start, today)
	if err != nil {
		log.Printf("[WORKER] Error fetching check-ins for goal %s: %v", goal.ID, err)
		return OutcomeFailed
	}

	series := engine.Series(domain.CompletionDates(checkIns), start)
	snap := snapshot{
		recovery: scoring.CalculateRecovery(series),
		longest:  scoring.LongestRun(series),
		flex:     engine.FlexDays(series, goal.FlexUsed),
	}

	milestones := milestonesFor(goal, snap, w.cfg.Window, today)

	outcome := OutcomeUnchanged
	if goal.UpdateSnapshot(snap.recovery.ConsecutiveRun, snap.longest, snap.flex.Earned, dayKey(today)) {
		if err := w.goals.UpdateSnapshot(ctx, goal.ID, goal.CurrentRun, goal.LongestRun, goal.FlexEarned, goal.SnapshotDay); err != nil {
			log.Printf("[WORKER] Failed to store snapshot for goal %s: %v", goal.ID, err)
			return OutcomeFailed
		}
		log.Printf("[WORKER] Snapshot updated for %s: run=%d longest=%d flex=%d", goal.ID, goal.CurrentRun, goal.LongestRun, goal.FlexEarned)
		outcome = OutcomeUpdated
	}

	if w.cache != nil {
		if err := w.cache.Invalidate(ctx, goal.ID); err != nil {
			log.Printf("[WORKER] Failed to invalidate report for goal %s: %v", goal.ID, err)
		}
	}

	w.publish(ctx, milestones)
	return outcome
}

func (w *ConsistencyWorker) locationOf(ctx context.Context, userID string) *time.Location {
	if w.users == nil {
		return time.UTC
	}
	user, err := w.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[WORKER] Falling back to UTC for user %s: %v", userID, err)
		return time.UTC
	}
	return user.Location()
}

func (w *ConsistencyWorker) publish(ctx context.Context, milestones []domain.Milestone) {
	if w.publisher == nil {
		return
	}
	for _, m := range milestones {
		if err := w.publisher.Publish(ctx, m); err != nil {
			log.Printf("[WORKER] Failed to publish %s for goal %s: %v", m.Kind, m.GoalID, err)
			continue
		}
		w.recorder.MilestonePublished(m.Kind)
	}
}

type snapshot struct {
	recovery scoring.RecoveryResult
	longest  int
	flex     scoring.FlexDaysResult
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// milestonesFor compares the stored goal snapshot with a fresh one. Each
// milestone fires on the recompute that first reaches it. at is the owner's
// local today.
func milestonesFor(prev *domain.Goal, next snapshot, window int, at time.Time) []domain.Milestone {
	var out []domain.Milestone
	add := func(kind domain.MilestoneKind, value int) {
		out = append(out, domain.Milestone{
			Kind:       kind,
			GoalID:     prev.ID,
			UserID:     prev.UserID,
			Value:      value,
			OccurredAt: at.UTC(),
		})
	}

	run := next.recovery.ConsecutiveRun
	comebackToday := prev.CurrentRun == 1 && prev.SnapshotDay == dayKey(at)
	if next.recovery.IsComeback && run == 1 && !comebackToday {
		add(domain.MilestoneComeback, run)
	}
	if next.flex.Earned > prev.FlexEarned {
		add(domain.MilestoneFlexDayEarned, next.flex.Earned)
	}
	if window > 0 && run == window && prev.CurrentRun != window {
		add(domain.MilestonePerfectWindow, window)
	}
	return out
}
