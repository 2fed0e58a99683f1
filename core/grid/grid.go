// Package grid generates a hexagonal tiling of a field boundary. The lattice
// is generated around the origin, recentered on the boundary's bounding box,
// clipped to the boundary and stripped of sliver fragments, so that interior
// cells are full hexagons and only edge cells are cut.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/hexfleet/core/geom"
	"github.com/kilianp07/hexfleet/core/model"
)

// AcreM2 is the number of square meters in one acre.
const AcreM2 = 4046.8564224

// Config holds grid generation parameters.
type Config struct {
	// CellAcres is the target area of one hexagonal cell, in acres.
	CellAcres float64 `json:"cell_acres"`
	// SliverM2 is the minimum clipped-cell area in square meters. Clipped
	// fragments at or below this threshold are discarded.
	SliverM2 float64 `json:"sliver_m2"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.CellAcres == 0 {
		c.CellAcres = 0.5
	}
	if c.SliverM2 == 0 {
		c.SliverM2 = 1.0
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.CellAcres <= 0 {
		return fmt.Errorf("cell_acres must be positive")
	}
	if c.SliverM2 < 0 {
		return fmt.Errorf("sliver_m2 must not be negative")
	}
	return nil
}

// Builder generates hexagonal grid cells within a boundary polygon.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder for the given configuration.
func NewBuilder(cfg Config) (*Builder, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

// Generate tiles the boundary with hexagonal cells and returns them with
// contiguous ids starting at 0. Lattice positions outside the boundary and
// sliver fragments are dropped before ids are assigned. A degenerate boundary
// (zero-width or zero-height bounding box) yields an empty list.
func (b *Builder) Generate(boundary geom.Polygon) ([]*model.Cell, error) {
	if boundary.IsEmpty() {
		return nil, fmt.Errorf("boundary polygon has fewer than 3 vertices")
	}
	side := geom.SideForArea(b.cfg.CellAcres * AcreM2)
	sqrt3 := math.Sqrt(3.0)

	minP, maxP := boundary.BoundingBox()
	if maxP.X-minP.X <= 0 || maxP.Y-minP.Y <= 0 {
		return nil, nil
	}
	boxCenter := geom.Point{X: (minP.X + maxP.X) / 2, Y: (minP.Y + maxP.Y) / 2}

	// Generous axial ranges so the lattice still covers the bounding box
	// after recentering.
	qMin := int(math.Floor((minP.X-3*side)/(side*sqrt3))) - 3
	qMax := int(math.Ceil((maxP.X+3*side)/(side*sqrt3))) + 3
	rMin := int(math.Floor((minP.Y-3*side)/(1.5*side))) - 3
	rMax := int(math.Ceil((maxP.Y+3*side)/(1.5*side))) + 3

	centers := make([]geom.Point, 0, (qMax-qMin+1)*(rMax-rMin+1))
	for r := rMin; r <= rMax; r++ {
		for q := qMin; q <= qMax; q++ {
			centers = append(centers, geom.AxialToXY(q, r, side))
		}
	}
	if len(centers) == 0 {
		return nil, nil
	}

	// Align the lattice centroid with the bounding-box center to remove
	// the parity offset of an origin-anchored tiling.
	xs := make([]float64, len(centers))
	ys := make([]float64, len(centers))
	for i, c := range centers {
		xs[i] = c.X
		ys[i] = c.Y
	}
	offset := boxCenter.Sub(geom.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)})

	cells := make([]*model.Cell, 0, len(centers))
	for _, c := range centers {
		center := c.Add(offset)
		hex := geom.HexagonVertices(center, side)
		clipped := geom.ClipToConvex(boundary, hex)
		if clipped.IsEmpty() {
			continue
		}
		area := clipped.Area()
		if area <= b.cfg.SliverM2 {
			continue
		}
		cells = append(cells, &model.Cell{
			ID:       len(cells),
			Center:   center,
			Polygon:  clipped,
			AreaM2:   area,
			Priority: model.PriorityNormal,
		})
	}
	return cells, nil
}

// FilterCenterInside keeps only cells whose center lies inside the boundary.
// If the filter would drop more than 20% of the cells the original set is
// returned unchanged, since an aggressive cut usually means the boundary is
// narrow relative to the cell size. Ids are left untouched.
func FilterCenterInside(cells []*model.Cell, boundary geom.Polygon) []*model.Cell {
	filtered := make([]*model.Cell, 0, len(cells))
	for _, c := range cells {
		if boundary.Contains(c.Center) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) < int(0.8*float64(len(cells))) {
		return cells
	}
	return filtered
}
