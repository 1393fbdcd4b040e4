package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validParameters() PlanningParameters {
	return PlanningParameters{
		OpeningFGInventory:     decimal.NewFromInt(465),
		OpeningResinInventory:  decimal.NewFromInt(132),
		OpeningBlendedPrice:    decimal.NewFromInt(694),
		FGSafetyDays:           decimal.NewFromInt(15),
		ResinSafetyDays:        decimal.NewFromInt(5),
		ProductionDaysPerMonth: 25,
		UsageRatio:             decimal.RequireFromString("0.725"),
	}
}

func TestPlanningParameters_Validate(t *testing.T) {
	if err := validParameters().Validate(); err != nil {
		t.Fatalf("expected valid parameters, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*PlanningParameters)
	}{
		{"negative_opening_fg", func(p *PlanningParameters) { p.OpeningFGInventory = decimal.NewFromInt(-1) }},
		{"negative_opening_resin", func(p *PlanningParameters) { p.OpeningResinInventory = decimal.NewFromInt(-1) }},
		{"negative_blended_price", func(p *PlanningParameters) { p.OpeningBlendedPrice = decimal.NewFromInt(-1) }},
		{"negative_fg_days", func(p *PlanningParameters) { p.FGSafetyDays = decimal.NewFromInt(-1) }},
		{"negative_resin_days", func(p *PlanningParameters) { p.ResinSafetyDays = decimal.NewFromInt(-1) }},
		{"zero_production_days", func(p *PlanningParameters) { p.ProductionDaysPerMonth = 0 }},
		{"negative_production_days", func(p *PlanningParameters) { p.ProductionDaysPerMonth = -5 }},
		{"negative_usage_ratio", func(p *PlanningParameters) { p.UsageRatio = decimal.RequireFromString("-0.1") }},
		{"usage_ratio_above_one", func(p *PlanningParameters) { p.UsageRatio = decimal.RequireFromString("1.01") }},
		{"unknown_capacity_rule", func(p *PlanningParameters) { p.Capacity = "elastic" }},
		{"negative_capacity", func(p *PlanningParameters) {
			p.Capacity = CapacityTrim
			p.FGCapacity = decimal.NewFromInt(-100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParameters()
			tt.mutate(&params)
			if err := params.Validate(); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestPlanningParameters_Validate_CapacityVariants(t *testing.T) {
	params := validParameters()
	params.Capacity = CapacityTopUp
	params.FGCapacity = decimal.NewFromInt(600)
	if err := params.Validate(); err != nil {
		t.Errorf("topup with non-negative cap should validate, got %v", err)
	}

	// With the cap disabled the capacity value is never read, so a stale
	// negative number on the struct must not fail validation.
	params = validParameters()
	params.Capacity = CapacityNone
	params.FGCapacity = decimal.NewFromInt(-1)
	if err := params.Validate(); err != nil {
		t.Errorf("capacity value should be ignored when rule is none, got %v", err)
	}
}

func TestCapacityRule_Valid(t *testing.T) {
	for _, rule := range []CapacityRule{CapacityNone, CapacityTrim, CapacityTopUp} {
		if !rule.Valid() {
			t.Errorf("expected %q to be valid", rule)
		}
	}
	if CapacityRule("burst").Valid() {
		t.Error("expected unknown rule to be invalid")
	}
}

func TestPlanningParameters_DefaultSafetyDays(t *testing.T) {
	params := validParameters()
	days := params.DefaultSafetyDays()
	if !days.FG.Equal(params.FGSafetyDays) || !days.Resin.Equal(params.ResinSafetyDays) {
		t.Errorf("expected (%s, %s), got (%s, %s)",
			params.FGSafetyDays, params.ResinSafetyDays, days.FG, days.Resin)
	}
}
