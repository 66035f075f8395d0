// ABOUTME: K-means clustering over embedding vectors
// ABOUTME: kmeans++ seeding, Lloyd iterations, best-of-N restarts, fixed seed
package core

import (
	"math"
	"math/rand"
)

const (
	// kmeansSeed fixes the random source so repeated fits over the same
	// vectors produce the same clusters.
	kmeansSeed int64 = 42
	// kmeansRestarts is the number of independent initializations per fit;
	// the run with the lowest inertia wins.
	kmeansRestarts = 10
	// kmeansMaxIterations bounds Lloyd's loop per restart.
	kmeansMaxIterations = 100
)

// kmeansFit is the outcome of one k-means fit.
type kmeansFit struct {
	centroids [][]float64
	labels    []int
	inertia   float64
}

// fitKMeans clusters vectors into k groups, keeping the best of
// kmeansRestarts restarts. The caller guarantees 1 <= k <= len(vectors).
func fitKMeans(vectors [][]float64, k int, seed int64) kmeansFit {
	rng := rand.New(rand.NewSource(seed))

	best := kmeansFit{inertia: math.Inf(1)}
	for restart := 0; restart < kmeansRestarts; restart++ {
		fit := lloyd(vectors, k, rng)
		if fit.inertia < best.inertia {
			best = fit
		}
	}
	return best
}

// lloyd runs one k-means pass: kmeans++ seeding followed by assignment and
// centroid-update iterations until assignments stabilize.
func lloyd(vectors [][]float64, k int, rng *rand.Rand) kmeansFit {
	centroids := seedCentroids(vectors, k, rng)
	labels := make([]int, len(vectors))

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := assignLabels(vectors, centroids, labels)
		updateCentroids(vectors, centroids, labels)
		if !changed {
			break
		}
	}

	return kmeansFit{
		centroids: centroids,
		labels:    labels,
		inertia:   totalInertia(vectors, centroids, labels),
	}
}

// seedCentroids picks k initial centroids with kmeans++: the first uniformly
// at random, each next weighted by squared distance to the nearest centroid
// already chosen.
func seedCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneVector(vectors[rng.Intn(len(vectors))]))

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		total := 0.0
		for i, v := range vectors {
			d := squaredDistance(v, centroids[0])
			for _, c := range centroids[1:] {
				if dc := squaredDistance(v, c); dc < d {
					d = dc
				}
			}
			dists[i] = d
			total += d
		}

		var next int
		if total == 0 {
			// All points coincide with existing centroids.
			next = rng.Intn(len(vectors))
		} else {
			target := rng.Float64() * total
			cum := 0.0
			next = len(vectors) - 1
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, cloneVector(vectors[next]))
	}
	return centroids
}

// assignLabels assigns each vector to its nearest centroid. Returns true if
// any assignment changed.
func assignLabels(vectors [][]float64, centroids [][]float64, labels []int) bool {
	changed := false
	for i, v := range vectors {
		best := 0
		bestDist := squaredDistance(v, centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := squaredDistance(v, centroids[c]); d < bestDist {
				best = c
				bestDist = d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// updateCentroids recomputes each centroid as the mean of its members. An
// empty cluster keeps its previous centroid.
func updateCentroids(vectors [][]float64, centroids [][]float64, labels []int) {
	dim := len(vectors[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}

	for i, v := range vectors {
		c := labels[i]
		counts[c]++
		for j, x := range v {
			sums[c][j] += x
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range centroids[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

// totalInertia is the within-cluster sum of squared distances.
func totalInertia(vectors [][]float64, centroids [][]float64, labels []int) float64 {
	total := 0.0
	for i, v := range vectors {
		total += squaredDistance(v, centroids[labels[i]])
	}
	return total
}

// squaredDistance is the squared Euclidean distance between two vectors.
func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// euclideanDistance is the Euclidean distance between two vectors.
func euclideanDistance(a, b []float64) float64 {
	return math.Sqrt(squaredDistance(a, b))
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
