package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
	"github.com/polyfab/resin-planner/pkg/domain/repositories"
	domainservices "github.com/polyfab/resin-planner/pkg/domain/services"
	"github.com/polyfab/resin-planner/pkg/infrastructure/events"
	"github.com/polyfab/resin-planner/pkg/planner"
)

// PlanService orchestrates plan runs: it resolves the coverage policy,
// builds the engine, executes the pass, and attaches run metadata, warnings
// and an event trail to the result. The engine stays pure; everything
// stateful (IDs, clocks, logs, events) lives here.
type PlanService struct {
	scenarios repositories.ScenarioRepository
	store     events.Store
	logger    *zap.Logger
}

// NewPlanService creates a plan service. store and logger may be nil; a nil
// store disables the event trail and a nil logger disables logging.
func NewPlanService(scenarios repositories.ScenarioRepository, store events.Store, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		scenarios: scenarios,
		store:     store,
		logger:    logger,
	}
}

// Run executes one plan over the scenario and returns the finished plan. The
// scenario's Policy is used as-is when present; otherwise the parameter-level
// fixed coverage targets are resolved across the horizon.
func (s *PlanService) Run(ctx context.Context, scenario *entities.Scenario) (*entities.PlanResult, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	runID := uuid.New()
	logger := s.logger.With(
		zap.String("run_id", runID.String()),
		zap.String("scenario", scenario.Name),
	)

	policy := scenario.Policy
	if policy == nil {
		advisor := domainservices.NewFixedPolicyAdvisor(
			scenario.Parameters.FGSafetyDays,
			scenario.Parameters.ResinSafetyDays,
		)
		resolved, err := domainservices.ResolvePolicy(advisor, scenario.Schedule.Horizon())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve coverage policy: %w", err)
		}
		policy = resolved
	}

	capacity, err := planner.CapacityFor(scenario.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to configure capacity policy: %w", err)
	}

	engine, err := planner.NewEngine(scenario.Parameters, capacity)
	if err != nil {
		return nil, err
	}

	s.emit(events.NewPlanRunStartedEvent(runID.String(), scenario.Name, scenario.Schedule.Horizon()))
	logger.Info("plan run started",
		zap.Int("horizon", scenario.Schedule.Horizon()),
		zap.String("capacity_policy", capacity.String()),
	)

	periods, err := engine.Plan(ctx, scenario.Schedule, policy)
	if err != nil {
		s.emit(events.NewPlanRunFailedEvent(runID.String(), scenario.Name, err.Error()))
		logger.Error("plan run failed", zap.Error(err))
		return nil, err
	}

	result := &entities.PlanResult{
		RunID:       runID,
		Scenario:    scenario.Name,
		GeneratedAt: time.Now().UTC(),
		Periods:     periods,
	}

	for i := range periods {
		if !periods[i].ResinInfeasible {
			continue
		}
		result.Warnings = append(result.Warnings, entities.PlanWarning{
			PeriodLabel: periods[i].Label,
			Message: fmt.Sprintf("closing resin inventory is negative (%s); coverage targets are infeasible for the opening state",
				periods[i].ResinClose),
		})
		s.emit(events.NewPeriodInfeasibleEvent(runID.String(), periods[i]))
		logger.Warn("period coverage infeasible",
			zap.String("period", periods[i].Label),
			zap.String("resin_close", periods[i].ResinClose.String()),
		)
	}

	s.emit(events.NewPlanRunCompletedEvent(runID.String(), scenario.Name, len(periods), len(result.Warnings)))
	logger.Info("plan run completed",
		zap.Int("periods", len(periods)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// RunNamed fetches a stored scenario and runs it.
func (s *PlanService) RunNamed(ctx context.Context, name string) (*entities.PlanResult, error) {
	if s.scenarios == nil {
		return nil, fmt.Errorf("no scenario repository configured")
	}
	scenario, err := s.scenarios.Get(name)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, scenario)
}

// RunAll executes every stored scenario. Independent scenarios run
// concurrently; the periods inside each run stay strictly sequential because
// every period's opening state is the previous one's close. Results come
// back ordered like the repository listing.
func (s *PlanService) RunAll(ctx context.Context) ([]*entities.PlanResult, error) {
	if s.scenarios == nil {
		return nil, fmt.Errorf("no scenario repository configured")
	}

	scenarios, err := s.scenarios.List()
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, nil
	}

	results := make([]*entities.PlanResult, len(scenarios))
	errs := make([]error, len(scenarios))

	var wg sync.WaitGroup
	for i := range scenarios {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Run(ctx, scenarios[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenarios[i].Name, err)
		}
	}
	return results, nil
}

func (s *PlanService) emit(event events.Event) {
	if s.store == nil {
		return
	}
	if err := s.store.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to append plan event",
			zap.String("event_type", event.Type()),
			zap.Error(err),
		)
	}
}
