package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// PolicyAdvisor supplies safety-stock coverage targets per period. Advisors
// are consulted exactly once, ahead of the planning pass, through
// ResolvePolicy; the engine itself only ever sees the resolved table.
type PolicyAdvisor interface {
	SafetyDays(periodIndex int) entities.SafetyDays
}

// FixedPolicyAdvisor returns the same coverage pair for the whole horizon.
type FixedPolicyAdvisor struct {
	days entities.SafetyDays
}

// NewFixedPolicyAdvisor builds an advisor with constant FG and resin targets.
func NewFixedPolicyAdvisor(fgDays, resinDays decimal.Decimal) *FixedPolicyAdvisor {
	return &FixedPolicyAdvisor{days: entities.SafetyDays{FG: fgDays, Resin: resinDays}}
}

func (a *FixedPolicyAdvisor) SafetyDays(int) entities.SafetyDays {
	return a.days
}

// PriceTrend labels the forecasted direction of resin prices for a period.
// How the labels are produced (market outlook, news) is outside this package;
// the planner only consumes the resulting day counts.
type PriceTrend string

const (
	TrendStable  PriceTrend = "stable"
	TrendRising  PriceTrend = "rising"
	TrendFalling PriceTrend = "falling"
)

// ParsePriceTrend converts a string label to a PriceTrend.
func ParsePriceTrend(s string) (PriceTrend, error) {
	switch PriceTrend(s) {
	case TrendStable, TrendRising, TrendFalling:
		return PriceTrend(s), nil
	default:
		return "", fmt.Errorf("invalid price trend %q (expected: stable, rising, or falling)", s)
	}
}

// TrendPolicyAdvisor widens resin coverage ahead of rising prices and narrows
// it ahead of falling ones, by a fixed day adjustment. Periods beyond the
// trend table, or labeled stable, get the base targets.
type TrendPolicyAdvisor struct {
	base       entities.SafetyDays
	adjustment decimal.Decimal
	trends     []PriceTrend
}

// NewTrendPolicyAdvisor builds a trend-varying advisor. adjustment is the
// number of production-days added (rising) or removed (falling) from the
// resin target; the narrowed target floors at zero.
func NewTrendPolicyAdvisor(base entities.SafetyDays, adjustment decimal.Decimal, trends []PriceTrend) *TrendPolicyAdvisor {
	return &TrendPolicyAdvisor{base: base, adjustment: adjustment, trends: trends}
}

func (a *TrendPolicyAdvisor) SafetyDays(periodIndex int) entities.SafetyDays {
	days := a.base
	if periodIndex < 0 || periodIndex >= len(a.trends) {
		return days
	}
	switch a.trends[periodIndex] {
	case TrendRising:
		days.Resin = days.Resin.Add(a.adjustment)
	case TrendFalling:
		days.Resin = days.Resin.Sub(a.adjustment)
		if days.Resin.IsNegative() {
			days.Resin = decimal.Zero
		}
	}
	return days
}

// ResolvePolicy materializes an advisor into one SafetyDays entry per period.
// Resolution happens synchronously and exactly once; advisors returning
// negative targets are rejected here so the engine never sees them.
func ResolvePolicy(advisor PolicyAdvisor, horizon int) ([]entities.SafetyDays, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	resolved := make([]entities.SafetyDays, horizon)
	for i := range resolved {
		days := advisor.SafetyDays(i)
		if days.FG.IsNegative() {
			return nil, fmt.Errorf("advisor returned negative FG safety days for period index %d", i)
		}
		if days.Resin.IsNegative() {
			return nil, fmt.Errorf("advisor returned negative resin safety days for period index %d", i)
		}
		resolved[i] = days
	}

	return resolved, nil
}
