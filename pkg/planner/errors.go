package planner

import "fmt"

// MissingPriceError reports a period that carries no supplier quotes at all.
// The run is aborted and no partial plan is returned; callers can match it
// with errors.As to localize the offending period.
type MissingPriceError struct {
	PeriodLabel string
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("period %s has no supplier prices", e.PeriodLabel)
}
