package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appservices "github.com/polyfab/resin-planner/pkg/application/services"
	"github.com/polyfab/resin-planner/pkg/domain/entities"
	domainservices "github.com/polyfab/resin-planner/pkg/domain/services"
	"github.com/polyfab/resin-planner/pkg/infrastructure/config"
	"github.com/polyfab/resin-planner/pkg/infrastructure/events"
	"github.com/polyfab/resin-planner/pkg/infrastructure/logging"
	csvrepo "github.com/polyfab/resin-planner/pkg/infrastructure/repositories/csv"
	"github.com/polyfab/resin-planner/pkg/interfaces/cli/output"
)

// NewPlanCommand creates the plan subcommand.
func NewPlanCommand() *cobra.Command {
	var (
		configPath   string
		scheduleFile string
		outputDir    string
		format       string
		horizon      int
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a production and purchase plan",
		Long: `Compute the plan for a schedule of monthly sales forecasts and supplier
quotes. Without --schedule, a seeded demo schedule starting at the current
month is used.

The schedule CSV carries two fixed columns (month, sales_plan) followed by one
column per supplier; a blank cell means the supplier quoted no price for that
month.`,
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
				logger.Debug("no schedule file given, using seeded demo schedule",
					zap.Int("horizon", horizon))
			}

			params, err := cfg.Parameters()
			if err != nil {
				return err
			}
			advisor, err := cfg.PolicyAdvisor()
			if err != nil {
				return err
			}
			policy, err := domainservices.ResolvePolicy(advisor, schedule.Horizon())
			if err != nil {
				return err
			}

			scenario := &entities.Scenario{
				Name:       "default",
				Schedule:   schedule,
				Parameters: params,
				Policy:     policy,
			}

			store := events.NewInMemoryEventStore()
			service := appservices.NewPlanService(nil, store, logger)

			result, err := service.Run(cmd.Context(), scenario)
			if err != nil {
				return err
			}

			if err := output.Write(result, output.Config{
				Format:    format,
				OutputDir: outputDir,
				Verbose:   verbose,
			}); err != nil {
				return err
			}

			if verbose {
				trail, err := store.ReadEvents(result.RunID.String(), 1)
				if err != nil {
					return err
				}
				for _, event := range trail {
					fmt.Printf("event %-24s v%d %s\n",
						event.Type(), event.Version(), event.Timestamp().Format(time.RFC3339))
				}
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
