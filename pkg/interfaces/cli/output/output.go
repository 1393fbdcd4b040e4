package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
)

// Config controls how a plan is presented.
type Config struct {
	// Format is one of text, json, csv.
	Format string
	// OutputDir writes files there instead of stdout. Required for csv.
	OutputDir string
	Verbose   bool
}

// Write renders the plan in the configured format. The presenters consume
// only the structured result; nothing here feeds back into planning.
func Write(result *entities.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return writeText(result, config)
	case "json":
		return writeJSON(result, config)
	case "csv":
		return writeCSV(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeText(result *entities.PlanResult, config Config) error {
	var out string

	out += "═══════════════════════════════════════════════════════════════════════════════════════\n"
	out += "                     PRODUCTION & RESIN PURCHASE PLAN\n"
	out += "═══════════════════════════════════════════════════════════════════════════════════════\n"
	out += fmt.Sprintf("Run: %s  Scenario: %s  Generated: %s\n\n",
		result.RunID, result.Scenario, result.GeneratedAt.Format(time.RFC3339))

	out += fmt.Sprintf("%-10s %9s %9s %9s %8s %12s %11s %10s %-12s %8s %9s\n",
		"Month", "Sales", "Prod", "FG Close", "FG Days",
		"Resin Close", "Resin Days", "Purchase", "Source", "Price", "Blended")
	out += "───────────────────────────────────────────────────────────────────────────────────────\n"

	for i := range result.Periods {
		p := &result.Periods[i]
		flag := " "
		if p.ResinInfeasible {
			flag = "!"
		}
		out += fmt.Sprintf("%-10s %9s %9s %9s %8s %12s %11s %10s %-12s %8s %9s%s\n",
			p.Label,
			p.Sales.StringFixed(1),
			p.Production.StringFixed(1),
			p.FGClose.StringFixed(1),
			p.FGDaysCover.StringFixed(1),
			p.ResinClose.StringFixed(1),
			p.ResinDaysCover.StringFixed(1),
			p.PurchaseQty.StringFixed(1),
			p.PurchaseSource,
			p.PurchaseUnitPrice.StringFixed(0),
			p.BlendedUnitCost.StringFixed(0),
			flag,
		)
	}

	if len(result.Warnings) > 0 {
		out += "\n⚠ WARNINGS\n"
		for _, w := range result.Warnings {
			out += fmt.Sprintf("  %s: %s\n", w.PeriodLabel, w.Message)
		}
	}

	out += "═══════════════════════════════════════════════════════════════════════════════════════\n"

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "plan.txt")
		if err := os.WriteFile(filename, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("Text output written to: %s\n", filename)
		}
		return nil
	}

	fmt.Print(out)
	return nil
}

func writeJSON(result *entities.PlanResult, config Config) error {
	doc := struct {
		Metadata struct {
			RunID       string `json:"run_id"`
			Scenario    string `json:"scenario"`
			GeneratedAt string `json:"generated_at"`
		} `json:"metadata"`
		Summary struct {
			Periods    int  `json:"periods"`
			Warnings   int  `json:"warnings"`
			Infeasible bool `json:"infeasible"`
		} `json:"summary"`
		Periods  []entities.PeriodResult `json:"periods"`
		Warnings []entities.PlanWarning  `json:"warnings,omitempty"`
	}{
		Periods:  result.Periods,
		Warnings: result.Warnings,
	}

	doc.Metadata.RunID = result.RunID.String()
	doc.Metadata.Scenario = result.Scenario
	doc.Metadata.GeneratedAt = result.GeneratedAt.Format(time.RFC3339)
	doc.Summary.Periods = len(result.Periods)
	doc.Summary.Warnings = len(result.Warnings)
	doc.Summary.Infeasible = result.Infeasible()

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "plan.json")
		if err := os.WriteFile(filename, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("JSON output written to: %s\n", filename)
		}
		return nil
	}

	fmt.Printf("%s\n", jsonBytes)
	return nil
}

func writeCSV(result *entities.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("CSV output requires an output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan.csv")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create plan CSV: %w", err)
	}
	defer file.Close()

	if err := WritePlanCSV(result, file); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("Plan CSV written to: %s\n", filename)
	}
	return nil
}

// WritePlanCSV writes the plan as delimited text: one row per period, one
// column per field.
func WritePlanCSV(result *entities.PlanResult, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"month", "sales", "production",
		"fg_close", "fg_days",
		"resin_close", "resin_days",
		"purchase_qty", "source", "unit_price", "blended_unit_cost",
		"resin_infeasible",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range result.Periods {
		p := &result.Periods[i]
		record := []string{
			p.Label,
			p.Sales.String(),
			p.Production.String(),
			p.FGClose.String(),
			p.FGDaysCover.String(),
			p.ResinClose.String(),
			p.ResinDaysCover.String(),
			p.PurchaseQty.String(),
			string(p.PurchaseSource),
			p.PurchaseUnitPrice.String(),
			p.BlendedUnitCost.String(),
			fmt.Sprintf("%t", p.ResinInfeasible),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
