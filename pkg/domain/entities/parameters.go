package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SafetyDays is a pair of coverage targets, expressed in production-days, for
// finished goods and for resin.
type SafetyDays struct {
	FG    decimal.Decimal
	Resin decimal.Decimal
}

// CapacityRule selects how a finished-goods storage cap constrains production.
type CapacityRule string

const (
	// CapacityNone disables the cap entirely.
	CapacityNone CapacityRule = "none"
	// CapacityTrim reduces production by exactly the overflow whenever the
	// unconstrained closing stock would exceed the cap.
	CapacityTrim CapacityRule = "trim"
	// CapacityTopUp lands closing stock exactly on the cap whenever opening
	// stock allows it, raising production even when coverage alone would not.
	CapacityTopUp CapacityRule = "topup"
)

// Valid reports whether the rule is one of the known capacity rules.
func (r CapacityRule) Valid() bool {
	switch r {
	case CapacityNone, CapacityTrim, CapacityTopUp:
		return true
	default:
		return false
	}
}

// PlanningParameters holds the opening state and policy knobs for a single
// plan run. Immutable once a run starts.
type PlanningParameters struct {
	OpeningFGInventory    decimal.Decimal
	OpeningResinInventory decimal.Decimal
	OpeningBlendedPrice   decimal.Decimal

	// Default coverage targets, used when no advisor varies them per period.
	FGSafetyDays    decimal.Decimal
	ResinSafetyDays decimal.Decimal

	ProductionDaysPerMonth int
	UsageRatio             decimal.Decimal

	// Capacity selects the finished-goods cap behavior; FGCapacity is read
	// only when the rule is not CapacityNone.
	Capacity   CapacityRule
	FGCapacity decimal.Decimal
}

// Validate rejects degenerate parameter sets before any pass begins.
func (p PlanningParameters) Validate() error {
	if p.OpeningFGInventory.IsNegative() {
		return fmt.Errorf("opening_fg_inventory must be non-negative, got %s", p.OpeningFGInventory)
	}
	if p.OpeningResinInventory.IsNegative() {
		return fmt.Errorf("opening_resin_inventory must be non-negative, got %s", p.OpeningResinInventory)
	}
	if p.OpeningBlendedPrice.IsNegative() {
		return fmt.Errorf("opening_blended_price must be non-negative, got %s", p.OpeningBlendedPrice)
	}
	if p.FGSafetyDays.IsNegative() {
		return fmt.Errorf("fg_safety_days must be non-negative, got %s", p.FGSafetyDays)
	}
	if p.ResinSafetyDays.IsNegative() {
		return fmt.Errorf("resin_safety_days must be non-negative, got %s", p.ResinSafetyDays)
	}
	if p.ProductionDaysPerMonth <= 0 {
		return fmt.Errorf("production_days_per_month must be positive, got %d", p.ProductionDaysPerMonth)
	}
	if p.UsageRatio.IsNegative() || p.UsageRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("usage_ratio must be within [0,1], got %s", p.UsageRatio)
	}

	rule := p.Capacity
	if rule == "" {
		rule = CapacityNone
	}
	if !rule.Valid() {
		return fmt.Errorf("capacity rule must be one of none, trim, topup; got %q", p.Capacity)
	}
	if rule != CapacityNone && p.FGCapacity.IsNegative() {
		return fmt.Errorf("fg_capacity must be non-negative, got %s", p.FGCapacity)
	}

	return nil
}

// DefaultSafetyDays returns the constant coverage pair configured on the
// parameters themselves.
func (p PlanningParameters) DefaultSafetyDays() SafetyDays {
	return SafetyDays{FG: p.FGSafetyDays, Resin: p.ResinSafetyDays}
}
