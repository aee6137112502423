package report

import (
	"fmt"

	"github.com/IvanShishkin/duphound/pkg/models"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// Entry is one row of a duplicate report
type Entry struct {
	DisplayName    string   `json:"display_name" yaml:"display_name"`
	SizeLabel      string   `json:"size_label" yaml:"size_label"`
	DuplicatePaths []string `json:"duplicate_paths" yaml:"duplicate_paths"`
	Count          int      `json:"count" yaml:"count"`
}

// BuildEntries converts clusters into report rows, keeping cluster order
func BuildEntries(clusters []models.DuplicateCluster, legacy bool) []Entry {
	entries := make([]Entry, 0, len(clusters))
	for _, c := range clusters {
		entries = append(entries, Entry{
			DisplayName:    c.Representative.Name,
			SizeLabel:      SizeLabel(c.Representative.Size, legacy),
			DuplicatePaths: c.Paths(),
			Count:          len(c.Members),
		})
	}
	return entries
}

// SizeLabel formats a byte count for the report. legacy reproduces the labels
// of earlier releases, which called KiB values "MB" and byte values above
// 1 MiB "KB".
func SizeLabel(size uint64, legacy bool) string {
	if legacy {
		switch {
		case size > mib:
			return fmt.Sprintf("%d KB", size/kib*kib)
		case size > kib:
			return fmt.Sprintf("%d MB", size/kib)
		default:
			return fmt.Sprintf("%d Byte", size)
		}
	}

	switch {
	case size < kib:
		return fmt.Sprintf("%d Byte", size)
	case size < mib:
		return fmt.Sprintf("%d KB", size/kib)
	case size < gib:
		return fmt.Sprintf("%d MB", size/mib)
	default:
		return fmt.Sprintf("%d GB", size/gib)
	}
}

// FormatBytes formats a byte count with two decimals for summaries
func FormatBytes(size uint64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%d B", size)
	case size < mib:
		return fmt.Sprintf("%.2f KB", float64(size)/kib)
	case size < gib:
		return fmt.Sprintf("%.2f MB", float64(size)/mib)
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/gib)
	}
}
