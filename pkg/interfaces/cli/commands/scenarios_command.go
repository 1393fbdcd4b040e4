package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	appservices "github.com/polyfab/resin-planner/pkg/application/services"
	"github.com/polyfab/resin-planner/pkg/domain/entities"
	domainservices "github.com/polyfab/resin-planner/pkg/domain/services"
	"github.com/polyfab/resin-planner/pkg/infrastructure/config"
	"github.com/polyfab/resin-planner/pkg/infrastructure/events"
	"github.com/polyfab/resin-planner/pkg/infrastructure/logging"
	csvrepo "github.com/polyfab/resin-planner/pkg/infrastructure/repositories/csv"
	"github.com/polyfab/resin-planner/pkg/infrastructure/repositories/memory"
	"github.com/polyfab/resin-planner/pkg/interfaces/cli/output"
)

// NewScenariosCommand creates the scenarios subcommand: run the configured
// baseline alongside stress variants and compare the plans side by side.
func NewScenariosCommand() *cobra.Command {
	var (
		configPath   string
		scheduleFile string
		outputDir    string
		format       string
		horizon      int
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Plan the baseline and stress variants side by side",
		Long: `Plan three scenarios over the same schedule and compare them:

  baseline      the configured coverage targets
  lean          resin coverage pulled to zero days (buy only what is used)
  conservative  both coverage targets widened by five days

Independent scenarios run concurrently; each plan itself stays sequential.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			var schedule entities.Schedule
			if scheduleFile != "" {
				schedule, err = csvrepo.NewLoader().LoadSchedule(scheduleFile)
				if err != nil {
					return err
				}
			} else {
				schedule = entities.DefaultSchedule(time.Now(), horizon)
			}

			params, err := cfg.Parameters()
			if err != nil {
				return err
			}
			advisor, err := cfg.PolicyAdvisor()
			if err != nil {
				return err
			}
			basePolicy, err := domainservices.ResolvePolicy(advisor, schedule.Horizon())
			if err != nil {
				return err
			}

			repo := memory.NewScenarioRepository()
			for _, scenario := range stressVariants(schedule, params, basePolicy) {
				if err := repo.Save(scenario); err != nil {
					return err
				}
			}

			service := appservices.NewPlanService(repo, events.NewInMemoryEventStore(), logger)
			results, err := service.RunAll(cmd.Context())
			if err != nil {
				return err
			}

			for _, result := range results {
				if err := output.Write(result, output.Config{
					Format:    format,
					OutputDir: scenarioOutputDir(outputDir, result.Scenario),
					Verbose:   verbose,
				}); err != nil {
					return err
				}
			}

			fmt.Printf("\n%-14s %8s %10s %12s\n", "Scenario", "Periods", "Warnings", "Infeasible")
			for _, result := range results {
				fmt.Printf("%-14s %8d %10d %12t\n",
					result.Scenario, len(result.Periods), len(result.Warnings), result.Infeasible())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (YAML)")
	cmd.Flags().StringVar(&scheduleFile, "schedule", "", "Path to schedule CSV file")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for results (optional)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, csv")
	cmd.Flags().IntVar(&horizon, "horizon", 6, "Plan horizon in months when no schedule file is given")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	return cmd
}

// stressVariants builds the scenario set. The baseline carries the resolved
// advisor policy; the variants override coverage outright, so they run on
// their own fixed targets instead.
func stressVariants(schedule entities.Schedule, base entities.PlanningParameters, basePolicy []entities.SafetyDays) []*entities.Scenario {
	widen := decimal.NewFromInt(5)

	lean := base
	lean.ResinSafetyDays = decimal.Zero

	conservative := base
	conservative.FGSafetyDays = base.FGSafetyDays.Add(widen)
	conservative.ResinSafetyDays = base.ResinSafetyDays.Add(widen)

	return []*entities.Scenario{
		{Name: "baseline", Schedule: schedule, Parameters: base, Policy: basePolicy},
		{Name: "lean", Schedule: schedule, Parameters: lean},
		{Name: "conservative", Schedule: schedule, Parameters: conservative},
	}
}

// scenarioOutputDir keeps per-scenario files apart; with no output directory
// everything goes to stdout.
func scenarioOutputDir(outputDir, scenario string) string {
	if outputDir == "" {
		return ""
	}
	return filepath.Join(outputDir, scenario)
}
