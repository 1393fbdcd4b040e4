package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// Loader handles loading planning schedules from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSchedule loads a schedule from a CSV file. The first two columns are
// fixed (month, sales_plan); every further column names a supplier, and a
// blank cell means that supplier quoted no price for the period.
func (l *Loader) LoadSchedule(filename string) (entities.Schedule, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("schedule CSV must have header and at least one data row")
	}

	suppliers, err := parseHeader(records[0])
	if err != nil {
		return nil, err
	}

	schedule := make(entities.Schedule, 0, len(records)-1)
	for i, record := range records[1:] {
		period, err := parsePeriod(record, suppliers)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: %w", i+2, err)
		}
		schedule = append(schedule, *period)
	}

	return schedule, nil
}

// parseHeader validates the fixed leading columns and returns the supplier
// names carried by the remaining ones.
func parseHeader(header []string) ([]entities.SupplierName, error) {
	fixed := []string{"month", "sales_plan"}
	if len(header) < len(fixed)+1 {
		return nil, fmt.Errorf("schedule CSV needs month, sales_plan and at least one supplier column, got %v", header)
	}

	for i, col := range fixed {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return nil, fmt.Errorf("schedule CSV header mismatch. Expected column %d to be %s, got %s", i+1, col, header[i])
		}
	}

	seen := make(map[entities.SupplierName]bool)
	suppliers := make([]entities.SupplierName, 0, len(header)-len(fixed))
	for _, col := range header[len(fixed):] {
		name := entities.SupplierName(strings.TrimSpace(col))
		if name == "" {
			return nil, fmt.Errorf("schedule CSV has an empty supplier column name")
		}
		if seen[name] {
			return nil, fmt.Errorf("schedule CSV has duplicate supplier column %s", name)
		}
		seen[name] = true
		suppliers = append(suppliers, name)
	}

	return suppliers, nil
}

func parsePeriod(record []string, suppliers []entities.SupplierName) (*entities.PeriodInput, error) {
	if len(record) != len(suppliers)+2 {
		return nil, fmt.Errorf("expected %d columns, got %d", len(suppliers)+2, len(record))
	}

	label := strings.TrimSpace(record[0])

	sales, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid sales_plan: %s", record[1])
	}

	prices := make(map[entities.SupplierName]decimal.Decimal, len(suppliers))
	for i, name := range suppliers {
		cell := strings.TrimSpace(record[i+2])
		if cell == "" {
			continue
		}
		price, err := decimal.NewFromString(cell)
		if err != nil {
			return nil, fmt.Errorf("invalid price for supplier %s: %s", name, cell)
		}
		prices[name] = price
	}

	return entities.NewPeriodInput(label, sales, prices)
}
