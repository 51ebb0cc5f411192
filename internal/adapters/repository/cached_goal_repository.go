package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unity-app/unity-engine/internal/core/domain"
)

var _ domain.GoalRepository = (*CachedGoalRepository)(nil)

const goalListTTL = 30 * time.Minute

// CachedGoalRepository caches each user's goal list in Redis and drops the
// entry on every write that could change it.
type CachedGoalRepository struct {
	next     domain.GoalRepository
	cache    *redis.Client
	observer CacheObserver
}

func NewCachedGoalRepository(next domain.GoalRepository, cache *redis.Client, observer CacheObserver) *CachedGoalRepository {
	if observer == nil {
		observer = noopObserver{}
	}
	return &CachedGoalRepository{
		next:     next,
		cache:    cache,
		observer: observer,
	}
}

func (r *CachedGoalRepository) cacheKey(userID string) string {
	return fmt.Sprintf("goals:%s", userID)
}

func (r *CachedGoalRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate goals for user %s: %v", userID, err)
	}
}

func (r *CachedGoalRepository) invalidateOwner(ctx context.Context, goalID string) {
	if g, err := r.next.GetByID(ctx, goalID); err == nil {
		r.invalidate(ctx, g.UserID)
	}
}

func (r *CachedGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var goals []*domain.Goal
		if err := json.Unmarshal(val, &goals); err == nil {
			r.observer.CacheLookup("goals", true)
			return goals, nil
		}

		log.Printf("[CACHE] Corrupted goal list for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}
	r.observer.CacheLookup("goals", false)

	goals, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(goals); err == nil {
		if setErr := r.cache.Set(ctx, key, data, goalListTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return goals, nil
}

func (r *CachedGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if err := r.next.Create(ctx, goal); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if err := r.next.Update(ctx, goal); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) Delete(ctx context.Context, id string) error {
	goal, err := r.next.GetByID(ctx, id)
	if err == nil && goal != nil {
		defer r.invalidate(ctx, goal.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedGoalRepository) UpdateSnapshot(ctx context.Context, id string, current, longest, flexEarned int, day string) error {
	if err := r.next.UpdateSnapshot(ctx, id, current, longest, flexEarned, day); err != nil {
		return err
	}
	r.invalidateOwner(ctx, id)
	return nil
}
