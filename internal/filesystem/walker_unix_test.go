//go:build unix

package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

func TestWalk_IgnoresFifo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plain.txt"), "data")
	if err := unix.Mkfifo(filepath.Join(root, "pipe"), 0644); err != nil {
		t.Skipf("Mkfifo unavailable: %v", err)
	}

	// hashing a fifo would block, so it must never reach the hasher
	w := NewWalker(WalkOptions{Hash: true}, nil, zap.NewNop())
	inv, err := w.Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if inv.Len() != 1 {
		t.Errorf("Inventory size = %v, want %v", inv.Len(), 1)
	}
}
