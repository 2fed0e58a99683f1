// Package metrics records partition outcomes for observability.
package metrics

import (
	"fmt"

	"github.com/kilianp07/hexfleet/core/model"
)

// Config defines settings for the metrics endpoint.
type Config struct {
	// Enabled turns on the Prometheus sink and HTTP endpoint.
	Enabled bool `json:"enabled"`
	// Listen is the address of the metrics HTTP server.
	Listen string `json:"listen"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Listen == "" {
		c.Listen = ":9090"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Enabled && c.Listen == "" {
		return fmt.Errorf("listen address is required when metrics are enabled")
	}
	return nil
}

// Sink records the outcome of a planning run.
type Sink interface {
	// RecordGrid records the size of the generated grid.
	RecordGrid(cellCount int, totalWorkload float64) error
	// RecordPartition records per-vehicle partition statistics.
	RecordPartition(stats model.PartitionStats) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordGrid(int, float64) error              { return nil }
func (NopSink) RecordPartition(model.PartitionStats) error { return nil }
