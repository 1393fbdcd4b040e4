package repositories

import "github.com/polyfab/resin-planner/pkg/domain/entities"

// ScenarioRepository provides access to named planning scenarios
type ScenarioRepository interface {
	Save(scenario *entities.Scenario) error
	Get(name string) (*entities.Scenario, error)
	List() ([]*entities.Scenario, error)
	Delete(name string) error
}
