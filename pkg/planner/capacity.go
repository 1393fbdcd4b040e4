package planner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// CapacityPolicy decides how a finished-goods storage cap constrains the
// production quantity of a period. Clamp receives the unconstrained
// production along with the opening FG inventory and the period's sales, and
// returns the production to use. Implementations must never return a
// negative quantity.
type CapacityPolicy interface {
	Clamp(production, openingFG, sales decimal.Decimal) decimal.Decimal
	String() string
}

// CapacityFor builds the policy configured on the parameters.
func CapacityFor(params entities.PlanningParameters) (CapacityPolicy, error) {
	switch params.Capacity {
	case "", entities.CapacityNone:
		return NoCapacity(), nil
	case entities.CapacityTrim:
		return TrimOverflow(params.FGCapacity), nil
	case entities.CapacityTopUp:
		return TopUpToCap(params.FGCapacity), nil
	default:
		return nil, fmt.Errorf("unknown capacity rule %q", params.Capacity)
	}
}

type noCapacity struct{}

// NoCapacity leaves production unconstrained.
func NoCapacity() CapacityPolicy { return noCapacity{} }

func (noCapacity) Clamp(production, _, _ decimal.Decimal) decimal.Decimal {
	return production
}

func (noCapacity) String() string { return string(entities.CapacityNone) }

type trimOverflow struct {
	limit decimal.Decimal
}

// TrimOverflow reduces production by exactly the amount the closing stock
// would exceed the cap. It preserves sales fulfillment, may undershoot the
// coverage target, and never raises production.
func TrimOverflow(limit decimal.Decimal) CapacityPolicy {
	return trimOverflow{limit: limit}
}

func (p trimOverflow) Clamp(production, openingFG, sales decimal.Decimal) decimal.Decimal {
	closing := openingFG.Add(production).Sub(sales)
	if closing.LessThanOrEqual(p.limit) {
		return production
	}
	trimmed := production.Sub(closing.Sub(p.limit))
	if trimmed.IsNegative() {
		return decimal.Zero
	}
	return trimmed
}

func (p trimOverflow) String() string { return string(entities.CapacityTrim) }

type topUpToCap struct {
	limit decimal.Decimal
}

// TopUpToCap lands closing stock exactly on the cap whenever opening stock
// allows it: overflow is trimmed, and production is raised toward the cap
// even when coverage alone would not require it. When opening stock already
// sits past the cap plus this period's sales, production floors at zero.
func TopUpToCap(limit decimal.Decimal) CapacityPolicy {
	return topUpToCap{limit: limit}
}

func (p topUpToCap) Clamp(_, openingFG, sales decimal.Decimal) decimal.Decimal {
	production := p.limit.Add(sales).Sub(openingFG)
	if production.IsNegative() {
		return decimal.Zero
	}
	return production
}

func (p topUpToCap) String() string { return string(entities.CapacityTopUp) }
