package planner

import "github.com/shopspring/decimal"

// blendUnitCost applies moving-average costing to a resin receipt: the new
// basis is the quantity-weighted average of the on-hand basis and the
// purchase price. When nothing is on hand and nothing is bought, the prior
// basis carries through unchanged.
func blendUnitCost(onHand, basis, purchaseQty, purchasePrice decimal.Decimal) decimal.Decimal {
	total := onHand.Add(purchaseQty)
	if !total.IsPositive() {
		return basis
	}
	value := onHand.Mul(basis).Add(purchaseQty.Mul(purchasePrice))
	return value.Div(total)
}
