package models

// DuplicateCluster is a representative file plus every file judged its duplicate
type DuplicateCluster struct {
	Representative FileRecord   `json:"representative" yaml:"representative"`
	Members        []FileRecord `json:"members" yaml:"members"`
	WastedBytes    uint64       `json:"wasted_bytes" yaml:"wasted_bytes"`
}

// NewDuplicateCluster builds a cluster and sums the wasted bytes of its members
func NewDuplicateCluster(representative FileRecord, members []FileRecord) DuplicateCluster {
	var wasted uint64
	for _, m := range members {
		wasted += m.Size
	}
	return DuplicateCluster{
		Representative: representative,
		Members:        members,
		WastedBytes:    wasted,
	}
}

// Paths returns the representative path followed by the member paths
func (c DuplicateCluster) Paths() []string {
	paths := make([]string, 0, len(c.Members)+1)
	paths = append(paths, c.Representative.Path)
	for _, m := range c.Members {
		paths = append(paths, m.Path)
	}
	return paths
}
