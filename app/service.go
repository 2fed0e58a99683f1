// Package app wires the planning pipeline: grid generation, priority
// marking, fleet synthesis, capacity computation, cluster assignment and
// export.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kilianp07/hexfleet/config"
	"github.com/kilianp07/hexfleet/core/assign"
	"github.com/kilianp07/hexfleet/core/fleet"
	"github.com/kilianp07/hexfleet/core/grid"
	"github.com/kilianp07/hexfleet/core/model"
	"github.com/kilianp07/hexfleet/core/workload"
	"github.com/kilianp07/hexfleet/infra/logger"
	"github.com/kilianp07/hexfleet/metrics"
	"github.com/kilianp07/hexfleet/pkg/export"
)

// Planner runs the full coverage-planning pipeline for one configuration.
type Planner struct {
	cfg  *config.Config
	log  logger.Logger
	sink metrics.Sink
}

// Result carries everything a caller needs after a run.
type Result struct {
	RunID      string
	Cells      []*model.Cell
	Vehicles   []model.Vehicle
	Assignment model.Assignment
	Stats      model.PartitionStats
}

// New creates a Planner from the configuration.
func New(cfg *config.Config) (*Planner, error) {
	logg := logger.New("planner")
	var sink metrics.Sink = metrics.NopSink{}
	if cfg.Metrics.Enabled {
		s, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}
	return &Planner{cfg: cfg, log: logg, sink: sink}, nil
}

// Run executes the pipeline once. The context only gates the optional
// metrics endpoint; the planning itself is synchronous.
func (p *Planner) Run(ctx context.Context) (*Result, error) {
	if p.cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, p.cfg.Metrics.Listen); err != nil {
				p.log.Errorf("metrics server: %v", err)
			}
		}()
	}

	runID := uuid.NewString()
	rng := rand.New(rand.NewSource(p.cfg.Plan.Seed))

	boundary := p.cfg.Farm.Polygon()
	builder, err := grid.NewBuilder(p.cfg.Grid)
	if err != nil {
		return nil, fmt.Errorf("grid builder: %w", err)
	}
	cells, err := builder.Generate(boundary)
	if err != nil {
		return nil, fmt.Errorf("grid generation: %w", err)
	}
	p.log.Infof("generated %d hex cells (run %s)", len(cells), runID)

	if p.cfg.Plan.CenterFilter {
		cells = grid.FilterCenterInside(cells, boundary)
		p.log.Infof("%d cells after centroid-inside filter", len(cells))
	}

	MarkHighPriority(cells, p.cfg.Plan.HighPriorityFraction, rng)

	vehicles := fleet.Generate(p.cfg.Fleet, rng)
	vehicles, err = workload.ComputeCapacities(cells, vehicles)
	if err != nil {
		return nil, fmt.Errorf("capacity computation: %w", err)
	}
	if err := p.sink.RecordGrid(len(cells), workload.Total(cells)); err != nil {
		p.log.Warnf("record grid metrics: %v", err)
	}

	assigner := assign.New(p.cfg.Plan.Seed, p.log)
	assignment, stats, err := assigner.Assign(cells, vehicles)
	if err != nil {
		return nil, fmt.Errorf("assignment: %w", err)
	}
	if err := p.sink.RecordPartition(stats); err != nil {
		p.log.Warnf("record partition metrics: %v", err)
	}
	p.logSummary(vehicles, stats)

	if p.cfg.Output.Dir != "" {
		if err := p.writeExports(assignment, runID); err != nil {
			return nil, err
		}
	}
	return &Result{
		RunID:      runID,
		Cells:      cells,
		Vehicles:   vehicles,
		Assignment: assignment,
		Stats:      stats,
	}, nil
}

func (p *Planner) logSummary(vehicles []model.Vehicle, stats model.PartitionStats) {
	for _, v := range vehicles {
		s := stats[v.ID]
		p.log.Debugw("vehicle share", map[string]any{
			"uav_id":   v.ID,
			"cells":    s.Count,
			"workload": s.Workload,
			"capacity": s.Capacity,
			"battery":  s.BatteryFraction,
		})
	}
	if violations := stats.Violations(); len(violations) > 0 {
		p.log.Warnf("%d vehicles remain over capacity: %v", len(violations), violations)
	}
}

func (p *Planner) writeExports(assignment model.Assignment, runID string) error {
	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	csvPath := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.CSVName)
	if err := writeFile(csvPath, func(f *os.File) error {
		return export.WriteCSV(f, assignment)
	}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	geoPath := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.GeoJSONName)
	if err := writeFile(geoPath, func(f *os.File) error {
		return export.WriteGeoJSON(f, assignment, runID)
	}); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	p.log.Infof("exports written to %s", p.cfg.Output.Dir)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MarkHighPriority marks a random fraction of cells as high priority, at
// least one when fraction is positive. The remaining cells keep their
// priority untouched.
func MarkHighPriority(cells []*model.Cell, fraction float64, rng *rand.Rand) {
	if fraction <= 0 || len(cells) == 0 {
		return
	}
	n := int(float64(len(cells)) * fraction)
	if n < 1 {
		n = 1
	}
	idx := rng.Perm(len(cells))
	for _, i := range idx[:n] {
		cells[i].Priority = model.PriorityHigh
	}
}
