package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/hexfleet/core/model"
)

// PromSink records planning outcomes in Prometheus metrics.
type PromSink struct {
	cells      prometheus.Gauge
	totalWork  prometheus.Gauge
	workload   *prometheus.GaugeVec
	capacity   *prometheus.GaugeVec
	cellCount  *prometheus.GaugeVec
	violations prometheus.Counter
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		cells: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hexfleet_grid_cells",
			Help: "Number of grid cells generated for the last run",
		}),
		totalWork: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hexfleet_total_workload",
			Help: "Total workload over all grid cells",
		}),
		workload: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hexfleet_vehicle_workload",
			Help: "Workload assigned to a vehicle",
		}, []string{"vehicle_id"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hexfleet_vehicle_capacity",
			Help: "Workload capacity of a vehicle",
		}, []string{"vehicle_id"}),
		cellCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hexfleet_vehicle_cells",
			Help: "Number of cells assigned to a vehicle",
		}, []string{"vehicle_id"}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hexfleet_capacity_violations_total",
			Help: "Vehicles left over capacity after rebalancing",
		}),
	}

	collectors := []prometheus.Collector{
		s.cells, s.totalWork, s.workload, s.capacity, s.cellCount, s.violations,
	}
	for i, col := range collectors {
		if err := reg.Register(col); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				s.cells = are.ExistingCollector.(prometheus.Gauge)
			case 1:
				s.totalWork = are.ExistingCollector.(prometheus.Gauge)
			case 2:
				s.workload = are.ExistingCollector.(*prometheus.GaugeVec)
			case 3:
				s.capacity = are.ExistingCollector.(*prometheus.GaugeVec)
			case 4:
				s.cellCount = are.ExistingCollector.(*prometheus.GaugeVec)
			case 5:
				s.violations = are.ExistingCollector.(prometheus.Counter)
			}
		}
	}
	return s, nil
}

// RecordGrid sets the grid-level gauges.
func (s *PromSink) RecordGrid(cellCount int, totalWorkload float64) error {
	s.cells.Set(float64(cellCount))
	s.totalWork.Set(totalWorkload)
	return nil
}

// RecordPartition sets the per-vehicle gauges and counts capacity violations.
func (s *PromSink) RecordPartition(stats model.PartitionStats) error {
	for id, st := range stats {
		label := strconv.Itoa(id)
		s.workload.WithLabelValues(label).Set(st.Workload)
		s.capacity.WithLabelValues(label).Set(st.Capacity)
		s.cellCount.WithLabelValues(label).Set(float64(st.Count))
		if st.OverCapacity() {
			s.violations.Inc()
		}
	}
	return nil
}
