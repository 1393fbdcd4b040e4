package planner

import (
	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// selectCheapest picks the supplier with the lowest unit price among those
// quoted for the period. Ties break to the lexicographically smallest
// supplier name; candidates are walked in the canonical order from
// PeriodInput.Suppliers, so the quote map's iteration order never matters.
func selectCheapest(period *entities.PeriodInput) (entities.SupplierName, decimal.Decimal, error) {
	names := period.Suppliers()
	if len(names) == 0 {
		return "", decimal.Zero, &MissingPriceError{PeriodLabel: period.Label}
	}

	best := names[0]
	bestPrice := period.SupplierPrices[best]
	for _, name := range names[1:] {
		if price := period.SupplierPrices[name]; price.LessThan(bestPrice) {
			best = name
			bestPrice = price
		}
	}

	return best, bestPrice, nil
}
