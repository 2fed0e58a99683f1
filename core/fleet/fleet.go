// Package fleet synthesizes UAV fleets for planning runs.
package fleet

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/hexfleet/core/model"
)

// Config holds parameters for bulk fleet generation.
type Config struct {
	// Size is the number of vehicles to generate.
	Size int `json:"size"`
	// BatteryMin and BatteryMax bound the uniformly drawn battery fraction.
	BatteryMin float64 `json:"battery_min"`
	BatteryMax float64 `json:"battery_max"`
	// Vehicles, when non-empty, is used verbatim and disables generation.
	Vehicles []VehicleConfig `json:"vehicles"`
}

// VehicleConfig describes one explicitly configured vehicle.
type VehicleConfig struct {
	ID              int     `json:"id"`
	BatteryFraction float64 `json:"battery_fraction"`
	// CapacityWorkload overrides the battery-proportional capacity when
	// positive.
	CapacityWorkload float64 `json:"capacity_workload"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Size == 0 && len(c.Vehicles) == 0 {
		c.Size = 15
	}
	if c.BatteryMin == 0 {
		c.BatteryMin = 0.35
	}
	if c.BatteryMax == 0 {
		c.BatteryMax = 1.0
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("size must not be negative")
	}
	if len(c.Vehicles) == 0 && c.Size == 0 {
		return fmt.Errorf("either size or an explicit vehicle list is required")
	}
	if c.BatteryMin <= 0 || c.BatteryMax > 1 || c.BatteryMin > c.BatteryMax {
		return fmt.Errorf("battery range must satisfy 0 < min <= max <= 1")
	}
	for _, v := range c.Vehicles {
		if v.BatteryFraction <= 0 || v.BatteryFraction > 1 {
			return fmt.Errorf("vehicle %d: battery fraction must be in (0,1]", v.ID)
		}
	}
	return nil
}

// Generate returns the configured fleet. Explicit vehicles take precedence;
// otherwise Size vehicles with ids 0..Size-1 are created with battery
// fractions drawn uniformly from [BatteryMin, BatteryMax) on rng.
func Generate(cfg Config, rng *rand.Rand) []model.Vehicle {
	if len(cfg.Vehicles) > 0 {
		vs := make([]model.Vehicle, len(cfg.Vehicles))
		for i, vc := range cfg.Vehicles {
			vs[i] = model.Vehicle{
				ID:               vc.ID,
				BatteryFraction:  vc.BatteryFraction,
				CapacityWorkload: vc.CapacityWorkload,
			}
		}
		return vs
	}
	vs := make([]model.Vehicle, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		vs[i] = model.Vehicle{
			ID:              i,
			BatteryFraction: cfg.BatteryMin + rng.Float64()*(cfg.BatteryMax-cfg.BatteryMin),
		}
	}
	return vs
}
