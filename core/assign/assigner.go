// Package assign distributes grid cells among vehicles. A k-means pass over
// cell centers seeds one spatial cluster per vehicle; a greedy rebalancing
// loop then moves cells out of over-capacity clusters until every cluster
// fits its capacity or the iteration budget runs out. Rebalancing is
// best-effort: residual violations are reported through the partition stats,
// never as an error.
package assign

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kilianp07/hexfleet/core/geom"
	corelogger "github.com/kilianp07/hexfleet/core/logger"
	"github.com/kilianp07/hexfleet/core/model"
	"github.com/kilianp07/hexfleet/core/workload"
)

// slackFactor is the fraction of a cell's workload a receiving bucket must
// have spare before accepting the cell. Requiring only half the workload
// stops marginally-too-large cells from oscillating between buckets forever.
const slackFactor = 0.5

// Assigner partitions cells among vehicles under per-vehicle capacities.
type Assigner struct {
	rng *rand.Rand
	log corelogger.Logger
}

// New returns an Assigner whose clustering phase draws from the given seed.
func New(seed int64, log corelogger.Logger) *Assigner {
	if log == nil {
		log = corelogger.Nop{}
	}
	return &Assigner{rng: rand.New(rand.NewSource(seed)), log: log}
}

// Assign produces the cell partition and its per-vehicle statistics. Every
// vehicle must already carry a capacity (see workload.ComputeCapacities);
// vehicles with zero capacity are allowed and simply attract no cells during
// rebalancing. Bucket i corresponds to vehicles[i].
func (a *Assigner) Assign(cells []*model.Cell, vehicles []model.Vehicle) (model.Assignment, model.PartitionStats, error) {
	if len(vehicles) == 0 {
		return nil, nil, fmt.Errorf("no vehicles")
	}
	if workload.Total(cells) <= 0 {
		return nil, nil, workload.ErrZeroWorkload
	}
	k := len(vehicles)

	centers := make([]geom.Point, len(cells))
	for i, c := range cells {
		centers[i] = c.Center
	}
	seeded := KMeans(centers, k, a.rng)

	buckets := make([][]*model.Cell, k)
	for i, lab := range seeded.Labels {
		buckets[lab] = append(buckets[lab], cells[i])
	}

	capacities := make([]float64, k)
	for i, v := range vehicles {
		capacities[i] = v.CapacityWorkload
	}
	iters := a.rebalance(buckets, seeded.Centroids, capacities)
	a.log.Debugw("rebalancing finished", map[string]any{
		"iterations": iters,
		"clusters":   k,
	})

	assignment := make(model.Assignment, k)
	stats := make(model.PartitionStats, k)
	for i, v := range vehicles {
		assignment[v.ID] = buckets[i]
		stats[v.ID] = model.VehicleStats{
			Count:           len(buckets[i]),
			Workload:        bucketWorkload(buckets[i]),
			Capacity:        v.CapacityWorkload,
			BatteryFraction: v.BatteryFraction,
		}
	}
	return assignment, stats, nil
}

// rebalance moves cells out of over-capacity buckets, farthest-from-centroid
// first, into the nearest bucket with enough spare room. It returns the
// number of passes run. Buckets are mutated in place.
func (a *Assigner) rebalance(buckets [][]*model.Cell, centroids []geom.Point, capacities []float64) int {
	k := len(buckets)
	maxIters := 200
	if 10*k > maxIters {
		maxIters = 10 * k
	}

	iter := 0
	changed := true
	for changed && iter < maxIters {
		changed = false
		iter++
		for b := 0; b < k; b++ {
			if bucketWorkload(buckets[b]) <= capacities[b] {
				continue
			}
			// Prefer relocating spatial outliers so the cluster core
			// stays compact.
			ordered := make([]*model.Cell, len(buckets[b]))
			copy(ordered, buckets[b])
			sort.SliceStable(ordered, func(i, j int) bool {
				return ordered[i].Center.Distance(centroids[b]) > ordered[j].Center.Distance(centroids[b])
			})
			for _, cell := range ordered {
				dest, ok := a.receiver(buckets, centroids, capacities, b, cell)
				if !ok {
					continue
				}
				moveCell(buckets, b, dest, cell)
				changed = true
				// Stop evaluating this bucket's cells; workloads are
				// recomputed on the next bucket scan.
				break
			}
		}
	}
	return iter
}

// receiver picks the destination bucket for a cell leaving bucket src: the
// nearest bucket (by clustering centroid) whose spare capacity covers at
// least half the cell's workload, ties broken by lowest bucket index.
func (a *Assigner) receiver(buckets [][]*model.Cell, centroids []geom.Point, capacities []float64, src int, cell *model.Cell) (int, bool) {
	type candidate struct {
		dist   float64
		bucket int
	}
	var candidates []candidate
	need := cell.Workload() * slackFactor
	for b := range buckets {
		if b == src {
			continue
		}
		spare := capacities[b] - bucketWorkload(buckets[b])
		if spare >= need {
			candidates = append(candidates, candidate{
				dist:   cell.Center.Distance(centroids[b]),
				bucket: b,
			})
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].bucket < candidates[j].bucket
	})
	return candidates[0].bucket, true
}

// moveCell transfers cell from buckets[src] to buckets[dst]. The cell is
// removed before insertion, so it is never owned by two buckets at once.
func moveCell(buckets [][]*model.Cell, src, dst int, cell *model.Cell) {
	for i, c := range buckets[src] {
		if c == cell {
			buckets[src] = append(buckets[src][:i], buckets[src][i+1:]...)
			break
		}
	}
	buckets[dst] = append(buckets[dst], cell)
}

func bucketWorkload(cells []*model.Cell) float64 {
	w := 0.0
	for _, c := range cells {
		w += c.Workload()
	}
	return w
}
