package models

import "time"

// ScanResults contains the complete results of one duplicate scan
type ScanResults struct {
	// Summary
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	ScanPath  string        `json:"scan_path" yaml:"scan_path"`
	Version   string        `json:"version" yaml:"version"`

	// Inventory
	TotalFiles   int `json:"total_files" yaml:"total_files"`
	TotalDirs    int `json:"total_dirs" yaml:"total_dirs"`
	SkippedFiles int `json:"skipped_files" yaml:"skipped_files"`

	// Duplicates
	Clusters         []DuplicateCluster `json:"clusters" yaml:"clusters"`
	DuplicateFiles   int                `json:"duplicate_files" yaml:"duplicate_files"`
	TotalWastedBytes uint64             `json:"total_wasted_bytes" yaml:"total_wasted_bytes"`

	// Settings used for the run
	Settings ScanSettings `json:"settings" yaml:"settings"`

	// Entries left out of the inventory
	Skipped []SkippedEntry `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Statistics
	Stats *ScanStatistics `json:"statistics" yaml:"statistics"`

	// Report path
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// ScanSettings records the matching policy a run used
type ScanSettings struct {
	ScoreThreshold int    `json:"score_threshold" yaml:"score_threshold"`
	UseHash        bool   `json:"use_hash" yaml:"use_hash"`
	MatchSize      bool   `json:"match_size" yaml:"match_size"`
	ExactNames     bool   `json:"exact_names" yaml:"exact_names"`
	DigestCase     string `json:"digest_case" yaml:"digest_case"`
}

// ScanStatistics contains detailed scan statistics
type ScanStatistics struct {
	TotalSize       uint64 `json:"total_size" yaml:"total_size"`
	BytesHashed     uint64 `json:"bytes_hashed" yaml:"bytes_hashed"`
	LargestFile     string `json:"largest_file,omitempty" yaml:"largest_file,omitempty"`
	LargestFileSize uint64 `json:"largest_file_size" yaml:"largest_file_size"`
	AverageFileSize uint64 `json:"average_file_size" yaml:"average_file_size"`

	// Skips by kind
	MetadataErrors  int `json:"metadata_errors" yaml:"metadata_errors"`
	TimestampErrors int `json:"timestamp_errors" yaml:"timestamp_errors"`
	DirectoryErrors int `json:"directory_errors" yaml:"directory_errors"`
	HashErrors      int `json:"hash_errors" yaml:"hash_errors"`

	// Performance
	WalkDuration    time.Duration `json:"walk_duration" yaml:"walk_duration"`
	ClusterDuration time.Duration `json:"cluster_duration" yaml:"cluster_duration"`
	FilesPerSecond  float64       `json:"files_per_second" yaml:"files_per_second"`
	MemoryUsed      uint64        `json:"memory_used_bytes" yaml:"memory_used_bytes"`
	WorkersUsed     int           `json:"workers_used" yaml:"workers_used"`
}

// AddCluster adds a cluster to the results
func (r *ScanResults) AddCluster(c DuplicateCluster) {
	r.Clusters = append(r.Clusters, c)
	r.DuplicateFiles += len(c.Members)
	r.TotalWastedBytes += c.WastedBytes
}

// AddSkipped records a skipped entry and updates the per-kind counters
func (r *ScanResults) AddSkipped(s SkippedEntry) {
	r.Skipped = append(r.Skipped, s)
	r.SkippedFiles++

	if r.Stats == nil {
		r.Stats = &ScanStatistics{}
	}
	switch s.Kind {
	case SkipMetadata:
		r.Stats.MetadataErrors++
	case SkipTimestamp:
		r.Stats.TimestampErrors++
	case SkipSubdirectory:
		r.Stats.DirectoryErrors++
	case SkipHash:
		r.Stats.HashErrors++
	}
}
