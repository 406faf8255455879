package services

import (
	"cargo-route-service/internal/domain"
	"cargo-route-service/internal/platform/obs"
	"cargo-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultPlanConcurrency = 4

var (
	// ErrPlanNotFound is returned when a plan id is unknown or the plan expired.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrEmptyPlan is returned when confirming a plan that has no routes.
	ErrEmptyPlan = errors.New("plan has no routes")
)

// PlanRequest asks for routes covering the pending cargo of one date.
type PlanRequest struct {
	TargetDate time.Time
	Options    Options
	// Sequencer overrides the solver's default stop ordering when non-nil.
	Sequencer Sequencer
}

// PlanningService loads cargo and fleet, runs the solver and keeps the
// calculated plan until it is confirmed into trips.
type PlanningService struct {
	Cargo    ports.CargoRepository
	Vehicles ports.VehicleRepository
	Trips    ports.TripRepository
	Plans    ports.PlanStore
	Solver   *Solver

	// Concurrency bounds PlanDates. Zero means defaultPlanConcurrency.
	Concurrency int
	Now         func() time.Time
	NewID       func() string
}

func (s *PlanningService) PlanDeliveries(ctx context.Context, req PlanRequest) (plan domain.Plan, err error) {
	defer obs.Time(ctx, "plan.deliveries")(&err)

	cargo, err := s.Cargo.ListPendingCargo(ctx, req.TargetDate)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan deliveries: list pending cargo: %w", err)
	}

	vehicles, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan deliveries: list vehicles: %w", err)
	}

	// Rented vehicles from earlier confirmations are not part of the fleet;
	// the solver synthesizes fresh rentals when needed.
	owned := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.IsRented {
			owned = append(owned, v)
		}
	}

	solver := s.Solver
	if req.Sequencer != nil {
		solver = solver.WithSequencer(req.Sequencer)
	}

	plan = domain.Plan{
		PlanID:     s.newID(),
		TargetDate: req.TargetDate,
		CreatedAt:  s.now(),
		Result:     solver.Solve(owned, cargo, req.Options),
	}

	if err := s.Plans.Put(ctx, plan); err != nil {
		return domain.Plan{}, fmt.Errorf("plan deliveries: store plan %s: %w", plan.PlanID, err)
	}

	return plan, nil
}

// PlanDates plans several dates concurrently. Plans are returned in the
// order of dates; the first failure cancels the remaining work.
func (s *PlanningService) PlanDates(ctx context.Context, dates []time.Time, opts Options) ([]domain.Plan, error) {
	plans := make([]domain.Plan, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultPlanConcurrency
	}
	g.SetLimit(limit)

	for i, d := range dates {
		g.Go(func() error {
			p, err := s.PlanDeliveries(ctx, PlanRequest{TargetDate: d, Options: opts})
			if err != nil {
				return fmt.Errorf("plan dates: %s: %w", d.Format(time.DateOnly), err)
			}
			plans[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// ConfirmPlan turns a stored plan into trips and drops it from the store.
func (s *PlanningService) ConfirmPlan(ctx context.Context, planID string) (trips []domain.Trip, err error) {
	defer obs.Time(ctx, "plan.confirm")(&err)

	plan, err := s.Plans.Get(ctx, planID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("confirm plan %s: %w", planID, ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("confirm plan %s: load: %w", planID, err)
	}

	if len(plan.Result.Routes) == 0 {
		return nil, fmt.Errorf("confirm plan %s: %w", planID, ErrEmptyPlan)
	}

	trips, err = s.Trips.SaveTrips(ctx, plan.TargetDate, plan.Result.Depot, plan.Result.Routes)
	if err != nil {
		return nil, fmt.Errorf("confirm plan %s: save trips: %w", planID, err)
	}

	// Trips are already committed at this point.
	if err := s.Plans.Delete(ctx, planID); err != nil {
		obs.Logger(ctx).Warn().Err(err).Str("plan_id", planID).Msg("drop confirmed plan")
	}

	return trips, nil
}

// CargoSummary compares the pending demand of a date with owned capacity.
func (s *PlanningService) CargoSummary(ctx context.Context, date time.Time) (domain.CargoSummary, error) {
	cargo, err := s.Cargo.ListPendingCargo(ctx, date)
	if err != nil {
		return domain.CargoSummary{}, fmt.Errorf("cargo summary: list pending cargo: %w", err)
	}

	vehicles, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return domain.CargoSummary{}, fmt.Errorf("cargo summary: list vehicles: %w", err)
	}

	summary := domain.CargoSummary{
		TargetDate: date,
		Stations:   make([]domain.StationSummary, 0),
	}

	index := make(map[string]int)
	for _, c := range cargo {
		i, ok := index[c.StationName]
		if !ok {
			coords, _ := s.Solver.Geo.Coordinates(c.StationName)
			i = len(summary.Stations)
			index[c.StationName] = i
			summary.Stations = append(summary.Stations, domain.StationSummary{
				StationName: c.StationName,
				Coordinates: coords,
			})
		}

		summary.Stations[i].CargoCount += c.Quantity
		summary.Stations[i].TotalWeight += c.TotalWeight()
		summary.TotalCargoCount += c.Quantity
		summary.TotalWeight += c.TotalWeight()
	}

	for _, v := range vehicles {
		if !v.IsRented {
			summary.VehicleCapacity += v.Capacity
		}
	}

	summary.CapacitySufficient = summary.TotalWeight <= summary.VehicleCapacity
	if !summary.CapacitySufficient {
		summary.Shortage = summary.TotalWeight - summary.VehicleCapacity
	}

	return summary, nil
}

func (s *PlanningService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *PlanningService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
