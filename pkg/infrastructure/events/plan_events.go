package events

import (
	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

const (
	PlanRunStartedEvent   = "plan.run.started"
	PlanRunCompletedEvent = "plan.run.completed"
	PlanRunFailedEvent    = "plan.run.failed"

	PeriodInfeasibleEvent = "plan.period.infeasible"
)

type PlanRunStarted struct {
	Scenario string `json:"scenario"`
	Horizon  int    `json:"horizon"`
}

type PlanRunCompleted struct {
	Scenario string `json:"scenario"`
	Periods  int    `json:"periods"`
	Warnings int    `json:"warnings"`
}

type PlanRunFailed struct {
	Scenario string `json:"scenario"`
	Reason   string `json:"reason"`
}

type PeriodInfeasible struct {
	Period entities.PeriodResult `json:"period"`
}

func NewPlanRunStartedEvent(runID, scenario string, horizon int) Event {
	return NewEvent(PlanRunStartedEvent, runID, PlanRunStarted{Scenario: scenario, Horizon: horizon})
}

func NewPlanRunCompletedEvent(runID, scenario string, periods, warnings int) Event {
	return NewEvent(PlanRunCompletedEvent, runID, PlanRunCompleted{
		Scenario: scenario,
		Periods:  periods,
		Warnings: warnings,
	})
}

func NewPlanRunFailedEvent(runID, scenario, reason string) Event {
	return NewEvent(PlanRunFailedEvent, runID, PlanRunFailed{Scenario: scenario, Reason: reason})
}

func NewPeriodInfeasibleEvent(runID string, period entities.PeriodResult) Event {
	return NewEvent(PeriodInfeasibleEvent, runID, PeriodInfeasible{Period: period})
}
