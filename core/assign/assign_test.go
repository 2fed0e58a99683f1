package assign

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kilianp07/hexfleet/core/geom"
	"github.com/kilianp07/hexfleet/core/model"
	"github.com/kilianp07/hexfleet/core/workload"
)

func cellAt(id int, x, y, area float64) *model.Cell {
	return &model.Cell{
		ID:       id,
		Center:   geom.Point{X: x, Y: y},
		Polygon:  geom.HexagonVertices(geom.Point{X: x, Y: y}, geom.SideForArea(area)),
		AreaM2:   area,
		Priority: model.PriorityNormal,
	}
}

// gridCells lays out n cells on a unit-spaced line with the given area each.
func gridCells(n int, area float64) []*model.Cell {
	cells := make([]*model.Cell, n)
	for i := 0; i < n; i++ {
		cells[i] = cellAt(i, float64(i)*100, 0, area)
	}
	return cells
}

func TestKMeansSeparatedClusters(t *testing.T) {
	var points []geom.Point
	for i := 0; i < 10; i++ {
		points = append(points, geom.Point{X: float64(i), Y: float64(i % 3)})
	}
	for i := 0; i < 10; i++ {
		points = append(points, geom.Point{X: 1000 + float64(i), Y: float64(i % 3)})
	}
	res := KMeans(points, 2, rand.New(rand.NewSource(1)))
	if len(res.Labels) != 20 || len(res.Centroids) != 2 {
		t.Fatalf("unexpected result shape: %d labels, %d centroids", len(res.Labels), len(res.Centroids))
	}
	left := res.Labels[0]
	for i := 1; i < 10; i++ {
		if res.Labels[i] != left {
			t.Fatalf("left blob split across clusters")
		}
	}
	right := res.Labels[10]
	if right == left {
		t.Fatal("both blobs in one cluster")
	}
	for i := 11; i < 20; i++ {
		if res.Labels[i] != right {
			t.Fatalf("right blob split across clusters")
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	points := make([]geom.Point, 50)
	src := rand.New(rand.NewSource(7))
	for i := range points {
		points[i] = geom.Point{X: src.Float64() * 100, Y: src.Float64() * 100}
	}
	a := KMeans(points, 4, rand.New(rand.NewSource(42)))
	b := KMeans(points, 4, rand.New(rand.NewSource(42)))
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("labels differ at %d under identical seeds", i)
		}
	}
}

func TestAssignPartitionsAllCells(t *testing.T) {
	cells := gridCells(30, 512)
	vehicles := []model.Vehicle{
		{ID: 0, BatteryFraction: 0.9},
		{ID: 1, BatteryFraction: 0.6},
		{ID: 2, BatteryFraction: 0.4},
	}
	vehicles, err := workload.ComputeCapacities(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	assignment, stats, err := New(42, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}

	if got := assignment.CellCount(); got != len(cells) {
		t.Fatalf("assigned %d cells, want %d", got, len(cells))
	}
	seen := make(map[int]int)
	assignedWorkload := 0.0
	for id, list := range assignment {
		for _, c := range list {
			seen[c.ID]++
			assignedWorkload += c.Workload()
		}
		if stats[id].Count != len(list) {
			t.Errorf("stats count mismatch for vehicle %d", id)
		}
	}
	for _, c := range cells {
		if seen[c.ID] != 1 {
			t.Fatalf("cell %d appears %d times", c.ID, seen[c.ID])
		}
	}
	if total := workload.Total(cells); math.Abs(assignedWorkload-total) > 1e-9*total {
		t.Errorf("assigned workload %v, total %v", assignedWorkload, total)
	}
}

// Three identical cells, three identical vehicles: one cell each and no
// capacity violations. Powers of two keep the capacity split exact.
func TestAssignThreeCellsThreeVehicles(t *testing.T) {
	cells := []*model.Cell{
		cellAt(0, 0, 0, 1024),
		cellAt(1, 500, 0, 1024),
		cellAt(2, 1000, 0, 1024),
	}
	vehicles := []model.Vehicle{
		{ID: 0, BatteryFraction: 0.5},
		{ID: 1, BatteryFraction: 0.5},
		{ID: 2, BatteryFraction: 0.5},
	}
	vehicles, err := workload.ComputeCapacities(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	_, stats, err := New(42, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	for id, s := range stats {
		if s.Count != 1 {
			t.Errorf("vehicle %d got %d cells, want 1", id, s.Count)
		}
	}
	if v := stats.Violations(); len(v) != 0 {
		t.Errorf("unexpected capacity violations: %v", v)
	}
}

// One vehicle holds all the capacity: rebalancing funnels everything to it.
func TestAssignSingleVehicleAbsorbsAll(t *testing.T) {
	cells := gridCells(20, 256)
	total := workload.Total(cells)
	vehicles := []model.Vehicle{
		{ID: 0, BatteryFraction: 1.0, CapacityWorkload: total},
		{ID: 1, BatteryFraction: 0.5, CapacityWorkload: 0},
		{ID: 2, BatteryFraction: 0.5, CapacityWorkload: 0},
	}
	_, stats, err := New(42, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	if stats[0].Count != len(cells) {
		t.Fatalf("vehicle 0 got %d cells, want all %d", stats[0].Count, len(cells))
	}
	// Workload equal to capacity is feasible, not a violation.
	if v := stats.Violations(); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
}

func TestAssignInfeasibleLeavesViolationsVisible(t *testing.T) {
	cells := gridCells(10, 1000)
	// Capacities far below the total workload: the partition cannot be
	// feasible, but Assign must still return it without error.
	vehicles := []model.Vehicle{
		{ID: 0, BatteryFraction: 0.5, CapacityWorkload: 1},
		{ID: 1, BatteryFraction: 0.5, CapacityWorkload: 1},
	}
	assignment, stats, err := New(42, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	if got := assignment.CellCount(); got != len(cells) {
		t.Fatalf("infeasible run dropped cells: %d of %d", got, len(cells))
	}
	if v := stats.Violations(); len(v) == 0 {
		t.Fatal("expected capacity violations to be visible in stats")
	}
}

func TestAssignDeterministic(t *testing.T) {
	cells := gridCells(40, 512)
	vehicles := []model.Vehicle{
		{ID: 0, BatteryFraction: 0.8},
		{ID: 1, BatteryFraction: 0.5},
	}
	vehicles, err := workload.ComputeCapacities(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	a1, _, err := New(7, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	a2, _, err := New(7, nil).Assign(cells, vehicles)
	if err != nil {
		t.Fatal(err)
	}
	for id := range a1 {
		if len(a1[id]) != len(a2[id]) {
			t.Fatalf("vehicle %d got %d then %d cells under the same seed", id, len(a1[id]), len(a2[id]))
		}
		for i := range a1[id] {
			if a1[id][i].ID != a2[id][i].ID {
				t.Fatalf("vehicle %d cell order differs under the same seed", id)
			}
		}
	}
}

func TestAssignNoVehicles(t *testing.T) {
	if _, _, err := New(1, nil).Assign(gridCells(3, 100), nil); err == nil {
		t.Fatal("expected error for empty fleet")
	}
}

func TestAssignZeroWorkload(t *testing.T) {
	_, _, err := New(1, nil).Assign(nil, []model.Vehicle{{ID: 0, BatteryFraction: 1, CapacityWorkload: 10}})
	if err == nil {
		t.Fatal("expected zero workload error")
	}
}
