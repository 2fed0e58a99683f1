package model

import (
	"fmt"

	"github.com/kilianp07/hexfleet/core/geom"
)

// Priority levels for grid cells. Higher priority inflates a cell's workload.
const (
	PriorityNormal = 1
	PriorityHigh   = 2
)

// Cell is one hexagonal grid cell clipped to the field boundary. Cells are
// created once by the grid builder and shared read-only afterwards; only the
// assignment step moves them between buckets.
type Cell struct {
	ID     int
	Center geom.Point
	// Polygon is the cell outline, clipped where the cell straddles the
	// boundary. Interior cells keep the full hexagon.
	Polygon geom.Polygon
	AreaM2  float64
	// Priority scales the cell workload. Defaults to PriorityNormal.
	Priority   int
	Restricted bool
}

// Workload returns the cell's scalar cost: area times priority.
func (c *Cell) Workload() float64 {
	p := c.Priority
	if p == 0 {
		p = PriorityNormal
	}
	return c.AreaM2 * float64(p)
}

// Validate checks that the cell geometry is sound.
func (c *Cell) Validate() error {
	if c.AreaM2 <= 0 {
		return fmt.Errorf("cell %d: area must be positive", c.ID)
	}
	if c.Polygon.IsEmpty() {
		return fmt.Errorf("cell %d: polygon has fewer than 3 vertices", c.ID)
	}
	return nil
}
