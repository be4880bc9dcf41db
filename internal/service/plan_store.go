package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

const planCacheKeyPrefix = "seating:plan:"

// PlanStore keeps generated seating plans between requests.
type PlanStore interface {
	Save(ctx context.Context, plan *models.SeatingPlan) error
	Get(ctx context.Context, id string) (*models.SeatingPlan, error)
}

type storedPlan struct {
	plan    *models.SeatingPlan
	savedAt time.Time
}

// memoryPlanStore is a TTL map. Plans are cloned on the way in and out.
type memoryPlanStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]storedPlan
	now   func() time.Time
}

// NewMemoryPlanStore keeps plans in process for ttl.
func NewMemoryPlanStore(ttl time.Duration) PlanStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &memoryPlanStore{ttl: ttl, items: make(map[string]storedPlan), now: time.Now}
}

func (s *memoryPlanStore) Save(_ context.Context, plan *models.SeatingPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[plan.ID] = storedPlan{plan: plan.Clone(), savedAt: s.now()}
	s.evictLocked()
	return nil
}

func (s *memoryPlanStore) Get(_ context.Context, id string) (*models.SeatingPlan, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
	}
	if s.now().Sub(item.savedAt) > s.ttl {
		s.mu.Lock()
		delete(s.items, id)
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan expired")
	}
	return item.plan.Clone(), nil
}

func (s *memoryPlanStore) evictLocked() {
	now := s.now()
	for id, item := range s.items {
		if now.Sub(item.savedAt) > s.ttl {
			delete(s.items, id)
		}
	}
}

// cachePlanStore persists plans as JSON through the cache service.
type cachePlanStore struct {
	cache *CacheService
	ttl   time.Duration
}

// NewCachePlanStore shares plans across instances through Redis.
func NewCachePlanStore(cache *CacheService, ttl time.Duration) PlanStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &cachePlanStore{cache: cache, ttl: ttl}
}

func (s *cachePlanStore) Save(ctx context.Context, plan *models.SeatingPlan) error {
	if err := s.cache.Set(ctx, planCacheKeyPrefix+plan.ID, plan, s.ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store seating plan")
	}
	return nil
}

func (s *cachePlanStore) Get(ctx context.Context, id string) (*models.SeatingPlan, error) {
	var plan models.SeatingPlan
	hit, err := s.cache.Get(ctx, planCacheKeyPrefix+id, &plan)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seating plan")
	}
	if !hit {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
	}
	return &plan, nil
}
