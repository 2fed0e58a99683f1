package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hexfleet/app"
	"github.com/kilianp07/hexfleet/config"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the grid and partition it among the fleet",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	planner, err := app.New(cfg)
	if err != nil {
		return err
	}
	res, err := planner.Run(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, v := range res.Vehicles {
		s := res.Stats[v.ID]
		fmt.Fprintf(cmd.OutOrStdout(), "UAV %d: hexes=%d, workload=%.1f, capacity=%.1f, battery=%.2f\n",
			v.ID, s.Count, s.Workload, s.Capacity, s.BatteryFraction)
		total += s.Count
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total hexes assigned: %d\n", total)
	if len(res.Vehicles) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Avg hexes per UAV: %.2f\n", float64(total)/float64(len(res.Vehicles)))
	}
	return nil
}
