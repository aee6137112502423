//go:build !linux
// +build !linux

package filesystem

import "io"

// adviseSequential is a no-op outside Linux
func adviseSequential(r io.Reader) {}
