package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hexfleet/config"
	"github.com/kilianp07/hexfleet/core/grid"
	"github.com/kilianp07/hexfleet/core/workload"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Generate the hex grid only and print cell statistics",
	RunE:  runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	builder, err := grid.NewBuilder(cfg.Grid)
	if err != nil {
		return err
	}
	boundary := cfg.Farm.Polygon()
	cells, err := builder.Generate(boundary)
	if err != nil {
		return err
	}
	if cfg.Plan.CenterFilter {
		cells = grid.FilterCenterInside(cells, boundary)
	}

	minArea, maxArea := 0.0, 0.0
	if len(cells) > 0 {
		minArea, maxArea = cells[0].AreaM2, cells[0].AreaM2
		for _, c := range cells[1:] {
			if c.AreaM2 < minArea {
				minArea = c.AreaM2
			}
			if c.AreaM2 > maxArea {
				maxArea = c.AreaM2
			}
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cells: %d\n", len(cells))
	fmt.Fprintf(cmd.OutOrStdout(), "Total workload: %.1f\n", workload.Total(cells))
	fmt.Fprintf(cmd.OutOrStdout(), "Cell area m2: min=%.1f max=%.1f\n", minArea, maxArea)
	return nil
}
