package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SupplierName identifies a resin supplier quoted in the schedule.
type SupplierName string

// PeriodInput is one row of the sales and price schedule: the demand forecast
// for a period together with whichever supplier quotes were received for it.
type PeriodInput struct {
	Label          string
	SalesForecast  decimal.Decimal
	SupplierPrices map[SupplierName]decimal.Decimal
}

// NewPeriodInput creates a validated PeriodInput. The supplier price map is
// copied so later edits by the caller cannot reach the schedule.
func NewPeriodInput(
	label string,
	salesForecast decimal.Decimal,
	supplierPrices map[SupplierName]decimal.Decimal,
) (*PeriodInput, error) {
	if label == "" {
		return nil, fmt.Errorf("period label cannot be empty")
	}
	if salesForecast.IsNegative() {
		return nil, fmt.Errorf("period %s: sales forecast must be non-negative, got %s", label, salesForecast)
	}

	prices := make(map[SupplierName]decimal.Decimal, len(supplierPrices))
	for name, price := range supplierPrices {
		if name == "" {
			return nil, fmt.Errorf("period %s: supplier name cannot be empty", label)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("period %s: price for supplier %s must be positive, got %s", label, name, price)
		}
		prices[name] = price
	}

	return &PeriodInput{
		Label:          label,
		SalesForecast:  salesForecast,
		SupplierPrices: prices,
	}, nil
}

// Suppliers returns the quoted supplier names in canonical order
// (lexicographic). Consumers that need a deterministic traversal of the
// quote map must go through this instead of ranging over it.
func (p *PeriodInput) Suppliers() []SupplierName {
	names := make([]SupplierName, 0, len(p.SupplierPrices))
	for name := range p.SupplierPrices {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Schedule is the ordered sequence of periods a plan runs over. Order is
// significant; the planning pass walks it left to right with a one-period
// look-ahead.
type Schedule []PeriodInput

// Horizon returns the number of periods in the schedule.
func (s Schedule) Horizon() int {
	return len(s)
}

// NextSales returns the sales forecast of period i+1. The final period has no
// successor, so its own forecast stands in for the look-ahead.
func (s Schedule) NextSales(i int) decimal.Decimal {
	if i+1 < len(s) {
		return s[i+1].SalesForecast
	}
	return s[i].SalesForecast
}

// DefaultSchedule builds the seeded demo schedule: sales ramping from 800 t
// by 50 t per month, the Local supplier quoting throughout, and the TPE and
// China/Korea import sources quoted for the first two months only.
func DefaultSchedule(start time.Time, horizon int) Schedule {
	schedule := make(Schedule, 0, horizon)
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < horizon; i++ {
		prices := map[SupplierName]decimal.Decimal{
			"Local": decimal.NewFromInt(int64(690 + 10*i)),
		}
		if i < 2 {
			prices["TPE"] = decimal.NewFromInt(int64(760 - 15*i))
			prices["China/Korea"] = decimal.NewFromInt(int64(740 - 11*i))
		}

		schedule = append(schedule, PeriodInput{
			Label:          month.Format("Jan-2006"),
			SalesForecast:  decimal.NewFromInt(int64(800 + 50*i)),
			SupplierPrices: prices,
		})
		month = month.AddDate(0, 1, 0)
	}

	return schedule
}
