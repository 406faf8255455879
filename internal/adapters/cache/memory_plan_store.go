package cache

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MemoryPlanStore is the in-process PlanStore used when no Redis address is
// configured. Expired plans are dropped lazily on access.
type MemoryPlanStore struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.Mutex
	plans map[string]memoryEntry
}

type memoryEntry struct {
	plan      domain.Plan
	expiresAt time.Time
}

func NewMemoryPlanStore(ttl time.Duration) *MemoryPlanStore {
	return &MemoryPlanStore{TTL: ttl, plans: make(map[string]memoryEntry)}
}

func (s *MemoryPlanStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MemoryPlanStore) Put(_ context.Context, plan domain.Plan) error {
	if plan.PlanID == "" {
		return errors.New("put plan: plan id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plans == nil {
		s.plans = make(map[string]memoryEntry)
	}

	var exp time.Time
	if s.TTL > 0 {
		exp = s.now().Add(s.TTL)
	}
	s.plans[plan.PlanID] = memoryEntry{plan: plan, expiresAt: exp}
	return nil
}

func (s *MemoryPlanStore) Get(_ context.Context, planID string) (domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.plans[planID]
	if ok && !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.plans, planID)
		ok = false
	}
	if !ok {
		return domain.Plan{}, fmt.Errorf("get plan %s: %w", planID, ports.ErrNotFound)
	}
	return e.plan, nil
}

func (s *MemoryPlanStore) Delete(_ context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plans, planID)
	return nil
}
