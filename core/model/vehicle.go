package model

import "fmt"

// Vehicle represents a UAV participating in a coverage run.
type Vehicle struct {
	ID int
	// BatteryFraction is the remaining state of charge between 0 and 1.
	BatteryFraction float64
	// CapacityWorkload is the maximum workload the vehicle can absorb. A
	// zero value means the capacity is derived from the battery fraction by
	// the workload model; a positive value is taken as caller-supplied and
	// used as-is.
	CapacityWorkload float64
}

// Validate checks that the vehicle configuration is sound.
func (v Vehicle) Validate() error {
	if v.BatteryFraction <= 0 || v.BatteryFraction > 1 {
		return fmt.Errorf("vehicle %d: battery fraction must be in (0,1], got %v", v.ID, v.BatteryFraction)
	}
	if v.CapacityWorkload < 0 {
		return fmt.Errorf("vehicle %d: capacity workload must not be negative", v.ID)
	}
	return nil
}
