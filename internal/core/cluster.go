// ABOUTME: ClusterSelector picks a cluster count and representative chunks
// ABOUTME: Elbow detection over the inertia curve filters redundant chunks
package core

import (
	"fmt"
	"sort"

	"docsum/internal/models"
)

// DefaultMaxClusters caps the candidate cluster counts evaluated during
// elbow detection. The effective maximum is min(DefaultMaxClusters, number
// of vectors).
const DefaultMaxClusters = 100

// ClusterSelector partitions chunk embedding vectors and selects one
// representative chunk per cluster. Clustering is a redundancy filter:
// summarizing one chunk per topic cluster preserves coverage while cutting
// the number of LLM calls.
type ClusterSelector struct {
	maxClusters int
	seed        int64
}

// NewClusterSelector creates a selector with the default cluster cap and
// the fixed clustering seed.
func NewClusterSelector(maxClusters int) *ClusterSelector {
	if maxClusters < 1 {
		maxClusters = DefaultMaxClusters
	}
	return &ClusterSelector{
		maxClusters: maxClusters,
		seed:        kmeansSeed,
	}
}

// SelectClusterCount picks K by fitting k-means for every candidate K and
// locating the elbow of the (K, inertia) curve. When no elbow is detected
// the degradation path is K=1.
func (cs *ClusterSelector) SelectClusterCount(vectors [][]float64) (int, error) {
	if len(vectors) == 0 {
		return 0, fmt.Errorf("%w: no vectors to cluster", ErrClustering)
	}

	maxK := cs.maxClusters
	if len(vectors) < maxK {
		maxK = len(vectors)
	}

	inertias := make([]float64, maxK)
	for k := 1; k <= maxK; k++ {
		inertias[k-1] = fitKMeans(vectors, k, cs.seed).inertia
	}

	if k := kneeOfCurve(inertias); k > 0 {
		return k, nil
	}
	return 1, nil
}

// Partition fits k-means with the chosen K and returns the cluster
// assignment. The representative of each cluster is the chunk whose vector
// is closest to that cluster's centroid; representatives come back sorted
// ascending by chunk index with duplicates removed, restoring document
// order.
func (cs *ClusterSelector) Partition(vectors [][]float64, k int) (models.ClusterAssignment, error) {
	if len(vectors) == 0 {
		return models.ClusterAssignment{}, fmt.Errorf("%w: no vectors to cluster", ErrClustering)
	}
	if k < 1 || k > len(vectors) {
		return models.ClusterAssignment{}, fmt.Errorf("%w: cluster count %d out of range [1, %d]", ErrClustering, k, len(vectors))
	}

	fit := fitKMeans(vectors, k, cs.seed)

	members := make([][]int, k)
	for i, label := range fit.labels {
		members[label] = append(members[label], i)
	}

	seen := make(map[int]bool, k)
	reps := make([]int, 0, k)
	for _, centroid := range fit.centroids {
		idx := nearestVector(vectors, centroid)
		if !seen[idx] {
			seen[idx] = true
			reps = append(reps, idx)
		}
	}
	sort.Ints(reps)

	return models.ClusterAssignment{
		Members:         members,
		Representatives: reps,
	}, nil
}

// SelectRepresentatives runs both stages. A single vector short-circuits:
// clustering is skipped and the lone chunk represents itself.
func (cs *ClusterSelector) SelectRepresentatives(vectors [][]float64) (models.ClusterAssignment, error) {
	if len(vectors) == 0 {
		return models.ClusterAssignment{}, fmt.Errorf("%w: no vectors to cluster", ErrClustering)
	}
	if len(vectors) == 1 {
		return models.ClusterAssignment{
			Members:         [][]int{{0}},
			Representatives: []int{0},
		}, nil
	}

	k, err := cs.SelectClusterCount(vectors)
	if err != nil {
		return models.ClusterAssignment{}, err
	}
	return cs.Partition(vectors, k)
}

// nearestVector returns the index of the vector closest to target under
// Euclidean distance.
func nearestVector(vectors [][]float64, target []float64) int {
	best := 0
	bestDist := euclideanDistance(vectors[0], target)
	for i := 1; i < len(vectors); i++ {
		if d := euclideanDistance(vectors[i], target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// kneeOfCurve locates the elbow of a convex decreasing cost curve with a
// normalized-difference (Kneedle) test. ys[i] is the cost at K=i+1. Returns
// the elbow K, or 0 when the curve has no knee (flat, too short, or not
// actually decreasing).
func kneeOfCurve(ys []float64) int {
	n := len(ys)
	if n < 3 {
		return 0
	}

	minY, maxY := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if maxY == minY {
		return 0
	}

	// Normalize both axes to [0,1], flip the decreasing curve upward, and
	// find the point furthest above the diagonal.
	bestIdx := 0
	bestDiff := 0.0
	for i, y := range ys {
		xn := float64(i) / float64(n-1)
		yn := (y - minY) / (maxY - minY)
		diff := (1 - yn) - xn
		if diff > bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}

	if bestDiff <= 0 || bestIdx == 0 || bestIdx == n-1 {
		return 0
	}
	return bestIdx + 1
}
