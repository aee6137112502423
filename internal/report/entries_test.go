package report

import (
	"reflect"
	"testing"

	"github.com/IvanShishkin/duphound/pkg/models"
)

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		name   string
		size   uint64
		legacy bool
		want   string
	}{
		{"Zero", 0, false, "0 Byte"},
		{"Bytes", 1023, false, "1023 Byte"},
		{"One KB", 1024, false, "1 KB"},
		{"KB", 500 * 1024, false, "500 KB"},
		{"One MB", 1024 * 1024, false, "1 MB"},
		{"MB", 3*1024*1024 + 7, false, "3 MB"},
		{"GB", 5 * 1024 * 1024 * 1024, false, "5 GB"},

		{"Legacy bytes", 1024, true, "1024 Byte"},
		{"Legacy KiB as MB", 1025, true, "1 MB"},
		{"Legacy KiB boundary", 1024 * 1024, true, "1024 MB"},
		{"Legacy above MiB", 1024*1024 + 1, true, "1048576 KB"},
		{"Legacy large", 5*1024*1024 + 100, true, "5242880 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeLabel(tt.size, tt.legacy); got != tt.want {
				t.Errorf("SizeLabel(%d, %v) = %v, want %v", tt.size, tt.legacy, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size uint64
		want string
	}{
		{10, "10 B"},
		{1536, "1.50 KB"},
		{2 * 1024 * 1024, "2.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.size); got != tt.want {
			t.Errorf("FormatBytes(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestBuildEntries(t *testing.T) {
	clusters := []models.DuplicateCluster{
		models.NewDuplicateCluster(
			models.FileRecord{Path: "/a/report.pdf", Name: "report.pdf", Size: 10},
			[]models.FileRecord{{Path: "/b/report_copy.pdf", Name: "report_copy.pdf", Size: 10}},
		),
		models.NewDuplicateCluster(
			models.FileRecord{Path: "/x/big.iso", Name: "big.iso", Size: 2048},
			[]models.FileRecord{
				{Path: "/y/big.iso", Name: "big.iso", Size: 2048},
				{Path: "/z/big.iso", Name: "big.iso", Size: 2048},
			},
		),
	}

	entries := BuildEntries(clusters, false)

	want := []Entry{
		{DisplayName: "report.pdf", SizeLabel: "10 Byte", DuplicatePaths: []string{"/a/report.pdf", "/b/report_copy.pdf"}, Count: 1},
		{DisplayName: "big.iso", SizeLabel: "2 KB", DuplicatePaths: []string{"/x/big.iso", "/y/big.iso", "/z/big.iso"}, Count: 2},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("BuildEntries() = %+v, want %+v", entries, want)
	}

	if legacy := BuildEntries(clusters, true); legacy[1].SizeLabel != "2 MB" {
		t.Errorf("BuildEntries(legacy)[1].SizeLabel = %v, want %v", legacy[1].SizeLabel, "2 MB")
	}
}
