package assign

import (
	"math"
	"math/rand"

	"github.com/kilianp07/hexfleet/core/geom"
)

const kmeansMaxIter = 300

// KMeansResult holds the outcome of a clustering run: one label per input
// point and one centroid per cluster.
type KMeansResult struct {
	Labels    []int
	Centroids []geom.Point
}

// KMeans partitions points into k clusters with Lloyd's algorithm, seeded by
// k-means++ on the provided generator. The run is deterministic for a given
// generator state. k must be at least 1; when k exceeds the number of
// distinct points, some clusters may end up empty.
func KMeans(points []geom.Point, k int, rng *rand.Rand) KMeansResult {
	centroids := seedPlusPlus(points, k, rng)
	labels := make([]int, len(points))

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		counts := make([]int, k)
		sums := make([]geom.Point, k)
		for i, p := range points {
			sums[labels[i]] = sums[labels[i]].Add(p)
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Reseed an emptied cluster with the point farthest
				// from its current centroid so every bucket keeps at
				// least one member.
				centroids[c] = points[farthestPoint(points, labels, centroids)]
				changed = true
				continue
			}
			centroids[c] = sums[c].Scale(1.0 / float64(counts[c]))
		}
		if !changed && iter > 0 {
			break
		}
	}
	return KMeansResult{Labels: labels, Centroids: centroids}
}

// seedPlusPlus picks k initial centroids: the first uniformly, the rest
// weighted by squared distance to the nearest chosen centroid.
func seedPlusPlus(points []geom.Point, k int, rng *rand.Rand) []geom.Point {
	centroids := make([]geom.Point, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	d2 := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := p.Distance(centroids[nearestCentroid(p, centroids)])
			d2[i] = d * d
			total += d2[i]
		}
		if total == 0 {
			// All remaining points coincide with a centroid; duplicate one.
			centroids = append(centroids, points[rng.Intn(len(points))])
			continue
		}
		target := rng.Float64() * total
		acc := 0.0
		pick := len(points) - 1
		for i, w := range d2 {
			acc += w
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, points[pick])
	}
	return centroids
}

func nearestCentroid(p geom.Point, centroids []geom.Point) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := p.Distance(c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// farthestPoint returns the index of the point with the greatest distance to
// its assigned centroid.
func farthestPoint(points []geom.Point, labels []int, centroids []geom.Point) int {
	best := 0
	bestDist := -1.0
	for i, p := range points {
		if d := p.Distance(centroids[labels[i]]); d > bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
