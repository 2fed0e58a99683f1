package config

import "fmt"

// PlanConfig groups run-level planning parameters.
type PlanConfig struct {
	// Seed governs priority marking, fleet synthesis and cluster seeding.
	Seed int64 `json:"seed"`
	// HighPriorityFraction is the share of cells marked high priority. At
	// least one cell is marked when the fraction is positive.
	HighPriorityFraction float64 `json:"high_priority_fraction"`
	// CenterFilter drops cells whose center falls outside the boundary,
	// with a fallback when the cut is too aggressive.
	CenterFilter bool `json:"center_filter"`
}

// SetDefaults applies sane defaults.
func (c *PlanConfig) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.HighPriorityFraction == 0 {
		c.HighPriorityFraction = 0.05
	}
}

// Validate checks mandatory fields.
func (c PlanConfig) Validate() error {
	if c.HighPriorityFraction < 0 || c.HighPriorityFraction > 1 {
		return fmt.Errorf("high_priority_fraction must be in [0,1]")
	}
	return nil
}

// OutputConfig selects where run artifacts are written.
type OutputConfig struct {
	// Dir is the directory receiving the CSV and GeoJSON exports. Empty
	// disables file export.
	Dir string `json:"dir"`
	// CSVName and GeoJSONName are the export file names inside Dir.
	CSVName     string `json:"csv_name"`
	GeoJSONName string `json:"geojson_name"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.CSVName == "" {
		c.CSVName = "zone_allocation.csv"
	}
	if c.GeoJSONName == "" {
		c.GeoJSONName = "uav_assignments.geojson"
	}
}
