package model

import "sort"

// Assignment maps a vehicle id to the cells it owns. Every input cell appears
// in exactly one vehicle's list; the cells themselves are shared read-only.
type Assignment map[int][]*Cell

// CellCount returns the total number of assigned cells across all vehicles.
func (a Assignment) CellCount() int {
	n := 0
	for _, cells := range a {
		n += len(cells)
	}
	return n
}

// VehicleStats summarizes one vehicle's share of the partition. It is a
// derived view, recomputable from the assignment at any time.
type VehicleStats struct {
	Count           int
	Workload        float64
	Capacity        float64
	BatteryFraction float64
}

// OverCapacity reports whether the vehicle's assigned workload exceeds its
// capacity. A workload exactly equal to the capacity is feasible.
func (s VehicleStats) OverCapacity() bool {
	return s.Workload > s.Capacity
}

// PartitionStats maps a vehicle id to its partition summary.
type PartitionStats map[int]VehicleStats

// Violations returns the ids of vehicles whose workload exceeds capacity,
// in ascending id order.
func (p PartitionStats) Violations() []int {
	var ids []int
	for id, s := range p {
		if s.OverCapacity() {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
