package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
	"github.com/polyfab/resin-planner/pkg/domain/repositories"
)

// ScenarioRepository provides in-memory scenario storage. Safe for
// concurrent use; plan runs over different scenarios may list and fetch in
// parallel.
type ScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[string]entities.Scenario
}

// NewScenarioRepository creates a new in-memory scenario repository
func NewScenarioRepository() *ScenarioRepository {
	return &ScenarioRepository{
		scenarios: make(map[string]entities.Scenario),
	}
}

// Verify interface compliance
var _ repositories.ScenarioRepository = (*ScenarioRepository)(nil)

// Save stores a scenario under its name, replacing any previous version.
func (r *ScenarioRepository) Save(scenario *entities.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario cannot be nil")
	}
	if scenario.Name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[scenario.Name] = copyScenario(scenario)
	return nil
}

// Get returns a copy of the named scenario.
func (r *ScenarioRepository) Get(name string) (*entities.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenario, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %s not found", name)
	}

	out := copyScenario(&scenario)
	return &out, nil
}

// List returns copies of all scenarios, ordered by name.
func (r *ScenarioRepository) List() ([]*entities.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*entities.Scenario, 0, len(names))
	for _, name := range names {
		scenario := r.scenarios[name]
		cp := copyScenario(&scenario)
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes the named scenario.
func (r *ScenarioRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenarios[name]; !ok {
		return fmt.Errorf("scenario %s not found", name)
	}
	delete(r.scenarios, name)
	return nil
}

// copyScenario deep-copies the schedule rows and policy table so callers and
// the store never share mutable state.
func copyScenario(s *entities.Scenario) entities.Scenario {
	cp := entities.Scenario{
		Name:       s.Name,
		Parameters: s.Parameters,
	}

	if s.Schedule != nil {
		cp.Schedule = make(entities.Schedule, len(s.Schedule))
		for i := range s.Schedule {
			period := s.Schedule[i]
			copied := entities.PeriodInput{
				Label:          period.Label,
				SalesForecast:  period.SalesForecast,
				SupplierPrices: make(map[entities.SupplierName]decimal.Decimal, len(period.SupplierPrices)),
			}
			for name, price := range period.SupplierPrices {
				copied.SupplierPrices[name] = price
			}
			cp.Schedule[i] = copied
		}
	}

	if s.Policy != nil {
		cp.Policy = make([]entities.SafetyDays, len(s.Policy))
		copy(cp.Policy, s.Policy)
	}

	return cp
}
