// Package workload derives the scalar cost of grid cells and the workload
// capacity of vehicles. Capacity is split proportionally to battery fraction
// unless a vehicle carries a caller-supplied capacity.
package workload

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/hexfleet/core/model"
)

// ErrZeroWorkload indicates the total workload over all cells is zero or
// negative, leaving no meaningful capacity split to compute.
var ErrZeroWorkload = errors.New("total workload is zero or negative")

// ForCell returns the workload of a single cell: area times priority.
func ForCell(c *model.Cell) float64 {
	return c.Workload()
}

// Total returns the summed workload over all cells.
func Total(cells []*model.Cell) float64 {
	ws := make([]float64, len(cells))
	for i, c := range cells {
		ws[i] = c.Workload()
	}
	return floats.Sum(ws)
}

// ComputeCapacities fills in CapacityWorkload for every vehicle that does not
// already carry one, splitting the total workload proportionally to battery
// fraction. Vehicles with a positive CapacityWorkload are left untouched. The
// input slice is not modified; a copy with capacities set is returned.
func ComputeCapacities(cells []*model.Cell, vehicles []model.Vehicle) ([]model.Vehicle, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("no vehicles")
	}
	total := Total(cells)
	if total <= 0 {
		return nil, ErrZeroWorkload
	}
	batterySum := 0.0
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		batterySum += v.BatteryFraction
	}

	out := make([]model.Vehicle, len(vehicles))
	copy(out, vehicles)
	for i := range out {
		if out[i].CapacityWorkload > 0 {
			continue
		}
		out[i].CapacityWorkload = total * out[i].BatteryFraction / batterySum
	}
	return out, nil
}
