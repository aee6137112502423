package filesystem

import (
	"sync"

	"github.com/IvanShishkin/duphound/pkg/models"
)

// Inventory collects file records from concurrent traversal branches.
// It is append-only while the walk runs; Snapshot is taken once it is done.
type Inventory struct {
	mu      sync.Mutex
	records []models.FileRecord
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add appends a record
func (i *Inventory) Add(record models.FileRecord) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records = append(i.records, record)
	return len(i.records)
}

// Len returns the number of records collected so far
func (i *Inventory) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.records)
}

// Snapshot returns a copy of the records in arrival order
func (i *Inventory) Snapshot() []models.FileRecord {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]models.FileRecord, len(i.records))
	copy(out, i.records)
	return out
}
