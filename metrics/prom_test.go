package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/hexfleet/core/model"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.RecordGrid(400, 12345.6); err != nil {
		t.Fatal(err)
	}
	stats := model.PartitionStats{
		0: {Count: 10, Workload: 900, Capacity: 1000, BatteryFraction: 0.9},
		1: {Count: 5, Workload: 600, Capacity: 500, BatteryFraction: 0.4},
	}
	if err := sink.RecordPartition(stats); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(sink.cells); got != 400 {
		t.Errorf("cells gauge = %v, want 400", got)
	}
	if got := testutil.ToFloat64(sink.workload.WithLabelValues("1")); got != 600 {
		t.Errorf("workload gauge = %v, want 600", got)
	}
	// Vehicle 1 is over capacity.
	if got := testutil.ToFloat64(sink.violations); got != 1 {
		t.Errorf("violations counter = %v, want 1", got)
	}
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatal(err)
	}
	// A second sink on the same registerer reuses the collectors.
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("re-registration should reuse collectors, got %v", err)
	}
}
