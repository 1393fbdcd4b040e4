package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the resin-planner command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resin-planner",
		Short: "Monthly production and resin purchasing planner",
		Long: `resin-planner derives a month-by-month production and raw-material
purchasing recommendation from a sales forecast and competing supplier quotes.

It rolls finished-goods and resin inventory forward across the planning
horizon, sizing production against safety-stock coverage targets, buying from
the cheapest quoted source, and tracking the moving-average cost basis of the
resin on hand.

Examples:
  resin-planner plan --schedule schedule.csv
  resin-planner plan --config resin-planner.yaml --format csv --output ./out
  resin-planner plan --horizon 6 --format json
  resin-planner scenarios --schedule schedule.csv`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewPlanCommand())
	cmd.AddCommand(NewScenariosCommand())

	return cmd
}
