package config

import (
	"fmt"

	"github.com/kilianp07/hexfleet/core/geom"
	"github.com/kilianp07/hexfleet/core/grid"
)

// FarmConfig describes the field to cover. Either an explicit boundary ring
// or a synthetic rectangle from total acreage and width.
type FarmConfig struct {
	// Boundary is an ordered closed ring of [x, y] coordinates in meters.
	// When set, TotalAcres and WidthM are ignored.
	Boundary [][2]float64 `json:"boundary"`
	// TotalAcres is the area of the synthetic rectangular field.
	TotalAcres float64 `json:"total_acres"`
	// WidthM is the width of the synthetic rectangular field in meters; the
	// height follows from the total area.
	WidthM float64 `json:"width_m"`
}

// SetDefaults applies sane defaults.
func (c *FarmConfig) SetDefaults() {
	if len(c.Boundary) == 0 {
		if c.TotalAcres == 0 {
			c.TotalAcres = 200
		}
		if c.WidthM == 0 {
			c.WidthM = 1000
		}
	}
}

// Validate checks mandatory fields.
func (c FarmConfig) Validate() error {
	if len(c.Boundary) > 0 {
		if len(c.Boundary) < 3 {
			return fmt.Errorf("boundary needs at least 3 points")
		}
		return nil
	}
	if c.TotalAcres <= 0 {
		return fmt.Errorf("total_acres must be positive")
	}
	if c.WidthM <= 0 {
		return fmt.Errorf("width_m must be positive")
	}
	return nil
}

// Polygon returns the farm boundary: the explicit ring when configured,
// otherwise a rectangle of TotalAcres anchored at the origin.
func (c FarmConfig) Polygon() geom.Polygon {
	if len(c.Boundary) > 0 {
		pts := make([]geom.Point, len(c.Boundary))
		for i, b := range c.Boundary {
			pts[i] = geom.Point{X: b[0], Y: b[1]}
		}
		return geom.Polygon{Vertices: pts}
	}
	height := c.TotalAcres * grid.AcreM2 / c.WidthM
	return geom.NewPolygon(
		geom.Point{X: 0, Y: 0},
		geom.Point{X: c.WidthM, Y: 0},
		geom.Point{X: c.WidthM, Y: height},
		geom.Point{X: 0, Y: height},
	)
}
