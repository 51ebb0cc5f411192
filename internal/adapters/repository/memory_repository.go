package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

var (
	_ domain.GoalRepository    = (*InMemoryGoalRepository)(nil)
	_ domain.CheckInRepository = (*InMemoryCheckInRepository)(nil)
	_ domain.UserRepository    = (*InMemoryUserRepository)(nil)
	_ domain.ReportCache       = (*InMemoryReportCache)(nil)
)

// InMemoryGoalRepository stores copies so callers cannot mutate state
// behind the lock.
type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal.Version = 1
	cp := *goal
	r.store[goal.ID] = &cp
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.store[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := []*domain.Goal{}
	for _, g := range r.store {
		if g.UserID == userID && g.DeletedAt == nil {
			cp := *g
			goals = append(goals, &cp)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})

	return goals, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[goal.ID]
	if !ok || stored.DeletedAt != nil {
		return domain.ErrGoalNotFound
	}
	if stored.Version != goal.Version {
		return domain.ErrGoalConflict
	}

	goal.Version++
	goal.UpdatedAt = time.Now().UTC()
	cp := *goal
	r.store[goal.ID] = &cp
	return nil
}

func (r *InMemoryGoalRepository) UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.store[id]
	if !ok || g.DeletedAt != nil {
		return domain.ErrGoalNotFound
	}
	g.CurrentRun = current
	g.LongestRun = longest
	g.FlexEarned = flexEarned
	g.SnapshotDay = day
	return nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.store[id]
	if !ok || g.DeletedAt != nil {
		return domain.ErrGoalNotFound
	}

	now := time.Now().UTC()
	g.DeletedAt = &now
	g.UpdatedAt = now
	g.Version++
	return nil
}

type InMemoryCheckInRepository struct {
	store map[string]*domain.CheckIn

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		store: make(map[string]*domain.CheckIn),
	}
}

func (r *InMemoryCheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := r.store[c.ID]; ok {
		return domain.ErrCheckInConflict
	}
	cp := *c
	r.store[c.ID] = &cp
	return nil
}

func (r *InMemoryCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCheckInNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[id]
	if !ok || c.DeletedAt != nil || c.UserID != userID {
		return domain.ErrCheckInNotFound
	}

	now := time.Now().UTC()
	c.DeletedAt = &now
	c.UpdatedAt = now
	c.Version++
	return nil
}

func (r *InMemoryCheckInRepository) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	return r.filter(func(c *domain.CheckIn) bool {
		return c.GoalID == goalID && c.DeletedAt == nil &&
			!c.CompletedAt.Before(from) && !c.CompletedAt.After(to)
	}, func(a, b *domain.CheckIn) bool { return a.CompletedAt.Before(b.CompletedAt) }), nil
}

func (r *InMemoryCheckInRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.CheckIn, error) {
	return r.filter(func(c *domain.CheckIn) bool {
		return c.UserID == userID && c.UpdatedAt.After(since)
	}, func(a, b *domain.CheckIn) bool { return a.UpdatedAt.Before(b.UpdatedAt) }), nil
}

func (r *InMemoryCheckInRepository) filter(keep func(*domain.CheckIn) bool, less func(a, b *domain.CheckIn) bool) []*domain.CheckIn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.CheckIn{}
	for _, c := range r.store {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// InMemoryReportCache stands in for Redis when it is not configured.
type InMemoryReportCache struct {
	store map[string]*domain.ConsistencyReport

	mu sync.RWMutex
}

func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		store: make(map[string]*domain.ConsistencyReport),
	}
}

func (c *InMemoryReportCache) Get(ctx context.Context, goalID string) (*domain.ConsistencyReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.store[goalID]
	if !ok {
		return nil, domain.ErrReportNotCached
	}
	return r, nil
}

func (c *InMemoryReportCache) Set(ctx context.Context, report *domain.ConsistencyReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[report.GoalID] = report
	return nil
}

func (c *InMemoryReportCache) Invalidate(ctx context.Context, goalID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, goalID)
	return nil
}
