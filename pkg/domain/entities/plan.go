package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodResult is one row of plan output. Created exactly once per input
// period, in input order, and immutable thereafter.
type PeriodResult struct {
	Label string

	Sales      decimal.Decimal
	Production decimal.Decimal

	FGClose     decimal.Decimal
	FGDaysCover decimal.Decimal

	ResinClose     decimal.Decimal
	ResinDaysCover decimal.Decimal

	PurchaseQty       decimal.Decimal
	PurchaseSource    SupplierName
	PurchaseUnitPrice decimal.Decimal

	BlendedUnitCost decimal.Decimal

	// ResinInfeasible flags a negative closing resin inventory. The value is
	// carried through unclamped so mis-configured coverage targets surface as
	// a warning rather than being silently corrected.
	ResinInfeasible bool
}

// PlanWarning is a soft signal attached to a plan, localized to a period.
type PlanWarning struct {
	PeriodLabel string
	Message     string
}

// PlanResult is the full output of one plan run: the per-period rows plus
// run metadata. Owned by the caller once returned.
type PlanResult struct {
	RunID       uuid.UUID
	Scenario    string
	GeneratedAt time.Time

	Periods  []PeriodResult
	Warnings []PlanWarning
}

// Infeasible reports whether any period closed with negative resin inventory.
func (r *PlanResult) Infeasible() bool {
	for i := range r.Periods {
		if r.Periods[i].ResinInfeasible {
			return true
		}
	}
	return false
}

// Scenario bundles everything one plan run needs: the schedule, the
// parameters, and the coverage policy already resolved to one entry per
// period. A nil Policy means the parameter-level defaults apply throughout.
type Scenario struct {
	Name       string
	Schedule   Schedule
	Parameters PlanningParameters
	Policy     []SafetyDays
}
