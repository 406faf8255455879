package cache

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "cargo-route:plan:"

// RedisPlanStore keeps calculated plans in Redis as JSON, expiring after TTL.
type RedisPlanStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func NewRedisPlanStore(client *redis.Client, ttl time.Duration) *RedisPlanStore {
	return &RedisPlanStore{Client: client, TTL: ttl}
}

func planKey(id string) string { return planKeyPrefix + id }

func (s *RedisPlanStore) Put(ctx context.Context, plan domain.Plan) (err error) {
	defer obs.Time(ctx, "plans.redis.Put")(&err)

	if s.Client == nil {
		return errors.New("redis plan store: client is nil")
	}
	if plan.PlanID == "" {
		return errors.New("put plan: plan id must not be empty")
	}

	b, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan %s: encode: %w", plan.PlanID, err)
	}

	if err := s.Client.Set(ctx, planKey(plan.PlanID), b, s.TTL).Err(); err != nil {
		return fmt.Errorf("put plan %s: set: %w", plan.PlanID, err)
	}
	return nil
}

func (s *RedisPlanStore) Get(ctx context.Context, planID string) (_ domain.Plan, err error) {
	defer obs.Time(ctx, "plans.redis.Get")(&err)

	if s.Client == nil {
		return domain.Plan{}, errors.New("redis plan store: client is nil")
	}

	b, err := s.Client.Get(ctx, planKey(planID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, fmt.Errorf("get plan %s: %w", planID, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("get plan %s: %w", planID, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(b, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("get plan %s: decode: %w", planID, err)
	}
	return plan, nil
}

func (s *RedisPlanStore) Delete(ctx context.Context, planID string) error {
	if s.Client == nil {
		return errors.New("redis plan store: client is nil")
	}
	if err := s.Client.Del(ctx, planKey(planID)).Err(); err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	return nil
}
