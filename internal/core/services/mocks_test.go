package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalRepo) UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error {
	return m.Called(ctx, id, current, longest, flexEarned, day).Error(0)
}

type MockCheckInRepo struct {
	mock.Mock
}

func (m *MockCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCheckInRepo) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockCheckInRepo) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, goalID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context, goalID string) (*domain.ConsistencyReport, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsistencyReport), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, report *domain.ConsistencyReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context, goalID string) error {
	return m.Called(ctx, goalID).Error(0)
}

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *recordingQueue) Enqueue(goalID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, goalID)
}

func (q *recordingQueue) Enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ids...)
}
