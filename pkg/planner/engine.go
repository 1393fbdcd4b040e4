package planner

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// Engine executes the forward-rolling production and purchasing recurrence.
// It is a pure function of its inputs: no clock, no randomness, and no state
// retained between runs. The three accumulators (FG inventory, resin
// inventory, blended price) live only for the duration of one pass.
type Engine struct {
	params   entities.PlanningParameters
	capacity CapacityPolicy
	prodDays decimal.Decimal
}

// NewEngine validates the parameters eagerly and builds an engine. A nil
// capacity policy means the rule configured on the parameters applies;
// pass an explicit policy only to override it.
func NewEngine(params entities.PlanningParameters, capacity CapacityPolicy) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planning parameters: %w", err)
	}
	if capacity == nil {
		derived, err := CapacityFor(params)
		if err != nil {
			return nil, err
		}
		capacity = derived
	}
	return &Engine{
		params:   params,
		capacity: capacity,
		prodDays: decimal.NewFromInt(int64(params.ProductionDaysPerMonth)),
	}, nil
}

// Plan walks the schedule once, left to right, producing one PeriodResult per
// period in input order. policy must hold one SafetyDays entry per period;
// advisors are resolved ahead of this call, never during it. Periods chain:
// each period's closing state opens the next, so the pass is strictly
// sequential.
//
// On a period with no supplier quotes the whole run aborts with a
// MissingPriceError and no results, including for periods already computed.
func (e *Engine) Plan(
	ctx context.Context,
	schedule entities.Schedule,
	policy []entities.SafetyDays,
) ([]entities.PeriodResult, error) {
	if len(schedule) == 0 {
		return nil, fmt.Errorf("schedule is empty")
	}
	if len(policy) != len(schedule) {
		return nil, fmt.Errorf("safety-day policy covers %d periods, schedule has %d", len(policy), len(schedule))
	}

	fgInv := e.params.OpeningFGInventory
	resinInv := e.params.OpeningResinInventory
	blended := e.params.OpeningBlendedPrice

	results := make([]entities.PeriodResult, 0, len(schedule))
	for i := range schedule {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		period := &schedule[i]
		sales := period.SalesForecast
		nextSales := schedule.NextSales(i)

		// Finished goods: close at the coverage target, never produce a
		// negative quantity, then let the capacity policy have the last word.
		fgTargetClose := policy[i].FG.Mul(nextSales).Div(e.prodDays)
		production := maxZero(sales.Add(fgTargetClose).Sub(fgInv))
		production = e.capacity.Clamp(production, fgInv, sales)
		fgClose := fgInv.Add(production).Sub(sales)

		// Resin: consumption follows production; the forward target is sized
		// against next period's expected consumption. The final period has no
		// successor, so its own production stands in.
		usage := production.Mul(e.params.UsageRatio)
		nextProdEst := production
		if i+1 < len(schedule) {
			nextProdEst = schedule[i+1].SalesForecast
		}
		resinTargetClose := policy[i].Resin.Mul(nextProdEst).Mul(e.params.UsageRatio).Div(e.prodDays)

		source, price, err := selectCheapest(period)
		if err != nil {
			return nil, err
		}

		// Buy only the shortfall; excess stock is carried, never disposed.
		purchase := maxZero(usage.Add(resinTargetClose).Sub(resinInv))
		newBlended := blendUnitCost(resinInv, blended, purchase, price)

		// Deliberately unclamped: a negative close means the coverage targets
		// were infeasible given the opening state, and must surface.
		resinClose := resinInv.Add(purchase).Sub(usage)

		fgDays := decimal.Zero
		if nextSales.IsPositive() {
			fgDays = fgClose.Mul(e.prodDays).Div(nextSales)
		}
		resinDays := decimal.Zero
		if dailyUse := nextProdEst.Mul(e.params.UsageRatio); dailyUse.IsPositive() {
			resinDays = resinClose.Mul(e.prodDays).Div(dailyUse)
		}

		results = append(results, entities.PeriodResult{
			Label:             period.Label,
			Sales:             sales,
			Production:        production,
			FGClose:           fgClose,
			FGDaysCover:       fgDays,
			ResinClose:        resinClose,
			ResinDaysCover:    resinDays,
			PurchaseQty:       purchase,
			PurchaseSource:    source,
			PurchaseUnitPrice: price,
			BlendedUnitCost:   newBlended,
			ResinInfeasible:   resinClose.IsNegative(),
		})

		fgInv = fgClose
		resinInv = resinClose
		blended = newBlended
	}

	return results, nil
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
