//go:build linux
// +build linux

package filesystem

import (
	"io"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the file will be read front to back (Linux)
func adviseSequential(r io.Reader) {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return
	}
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
