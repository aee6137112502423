package filesystem

import (
	"fmt"
	"sync"
	"testing"

	"github.com/IvanShishkin/duphound/pkg/models"
)

func TestInventory_ConcurrentAdd(t *testing.T) {
	inv := NewInventory()

	var wg sync.WaitGroup
	for g := 0; g < 50; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				inv.Add(models.FileRecord{Path: fmt.Sprintf("/%d/%d", g, i)})
			}
		}(g)
	}
	wg.Wait()

	if inv.Len() != 5000 {
		t.Errorf("Len() = %v, want %v", inv.Len(), 5000)
	}

	seen := make(map[string]bool)
	for _, r := range inv.Snapshot() {
		if seen[r.Path] {
			t.Errorf("Duplicate record in inventory: %s", r.Path)
		}
		seen[r.Path] = true
	}
}

func TestInventory_SnapshotIsCopy(t *testing.T) {
	inv := NewInventory()
	inv.Add(models.FileRecord{Path: "/a"})

	snap := inv.Snapshot()
	snap[0].Path = "/changed"
	inv.Add(models.FileRecord{Path: "/b"})

	again := inv.Snapshot()
	if again[0].Path != "/a" {
		t.Errorf("Snapshot()[0].Path = %v, want %v", again[0].Path, "/a")
	}
	if len(snap) != 1 {
		t.Errorf("len(snapshot) = %v, want %v", len(snap), 1)
	}
}
