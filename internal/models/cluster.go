// ABOUTME: ClusterAssignment records how chunk vectors were partitioned
// ABOUTME: Holds per-cluster member indices and the chosen representatives
package models

// ClusterAssignment is the result of partitioning chunk embedding vectors.
// Members[c] lists the chunk indices assigned to cluster c. Representatives
// holds one chunk index per cluster (the chunk whose vector is closest to
// that cluster's centroid), sorted ascending with duplicates removed.
type ClusterAssignment struct {
	Members         [][]int `json:"members"`
	Representatives []int   `json:"representatives"`
}

// K returns the number of clusters in the assignment.
func (ca ClusterAssignment) K() int {
	return len(ca.Members)
}
