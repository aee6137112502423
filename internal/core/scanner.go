package core

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/IvanShishkin/duphound/internal/config"
	"github.com/IvanShishkin/duphound/internal/duplicates"
	"github.com/IvanShishkin/duphound/internal/filesystem"
	"github.com/IvanShishkin/duphound/internal/report"
	"github.com/IvanShishkin/duphound/pkg/models"
	"go.uber.org/zap"
)

// Version is the release reported by the CLI and written into reports
var Version = "0.1.0"

// progressInterval throttles progress callbacks
const progressInterval = 100 * time.Millisecond

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Scanner runs one duplicate scan: walk, cluster, report
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	fs               filesystem.FileSystem
	reporter         *report.Generator
	results          *models.ScanResults
	progressCallback ProgressCallback
	lastProgress     time.Time
	mu               sync.Mutex
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		config: cfg,
		logger: logger,
		fs:     filesystem.OSFileSystem{},
		results: &models.ScanResults{
			Stats: &models.ScanStatistics{},
		},
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// SetFileSystem replaces the filesystem used for walking and hashing
func (s *Scanner) SetFileSystem(fsys filesystem.FileSystem) {
	s.fs = fsys
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// throttledProgress reports at most once per progressInterval unless force is set
func (s *Scanner) throttledProgress(phase string, current, total int, message string, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && time.Since(s.lastProgress) < progressInterval {
		return
	}
	s.lastProgress = time.Now()
	s.reportProgress(phase, current, total, message)
}

// Scan walks path, clusters the inventory and generates the report.
// An unreadable root aborts the scan before any report is written.
// Every call returns a new ScanResults; earlier results are left untouched.
func (s *Scanner) Scan(ctx context.Context, path string) (*models.ScanResults, error) {
	cfg := s.config
	policy := duplicates.PolicyFor(cfg.UseHash, cfg.MatchSize)

	s.logger.Info("Starting scan",
		zap.String("path", path),
		zap.Int("score_threshold", cfg.ScoreThreshold),
		zap.String("policy", policy.String()))

	// Each run starts from empty results
	s.results = &models.ScanResults{Stats: &models.ScanStatistics{}}
	s.mu.Lock()
	s.lastProgress = time.Time{}
	s.mu.Unlock()

	s.results.StartTime = time.Now()
	s.results.ScanPath = path
	if abs, err := filepath.Abs(path); err == nil {
		s.results.ScanPath = abs
	}
	s.results.Version = Version
	s.results.Settings = models.ScanSettings{
		ScoreThreshold: cfg.ScoreThreshold,
		UseHash:        cfg.UseHash,
		MatchSize:      cfg.MatchSize,
		ExactNames:     cfg.ExactNames,
		DigestCase:     cfg.DigestCase,
	}

	// Initialize report generator
	var err error
	s.reporter, err = report.NewGenerator(cfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report generator: %w", err)
	}

	workers := cfg.GetWorkers()
	s.results.Stats.WorkersUsed = workers

	// Walk
	records, err := s.walk(ctx, path, workers)
	if err != nil {
		return nil, err
	}

	// Cluster
	s.reportProgress("clustering", 0, len(records), "Comparing files...")
	clusterStart := time.Now()

	engine := duplicates.NewEngine(duplicates.Options{
		Threshold: cfg.ScoreThreshold,
		Policy:    policy,
		Workers:   workers,
		Scorer:    s.scorer(),
	}, s.logger)
	engine.SetProgressCallback(func(done, total int) {
		s.throttledProgress("clustering", done, total, "", done == total)
	})

	clusters, wasted, err := engine.FindDuplicates(ctx, records)
	if err != nil {
		return nil, err
	}
	for _, c := range clusters {
		s.results.AddCluster(c)
	}
	s.results.Stats.ClusterDuration = time.Since(clusterStart)

	if s.results.TotalWastedBytes != wasted {
		s.logger.Warn("Wasted bytes mismatch",
			zap.Uint64("clusters", s.results.TotalWastedBytes),
			zap.Uint64("engine", wasted))
	}

	// Finalize results
	s.results.EndTime = time.Now()
	s.results.Duration = s.results.EndTime.Sub(s.results.StartTime)

	// Calculate statistics
	s.calculateStats(records)

	// Generate report
	reportPath, err := s.reporter.Generate(s.results)
	if err != nil {
		s.logger.Error("Failed to generate report", zap.Error(err))
		return s.results, err
	}
	s.results.ReportPath = reportPath

	s.logger.Info("Scan completed",
		zap.Duration("duration", s.results.Duration),
		zap.Int("files", s.results.TotalFiles),
		zap.Int("clusters", len(s.results.Clusters)),
		zap.Uint64("wasted_bytes", s.results.TotalWastedBytes))

	return s.results, nil
}

// walk builds the inventory and returns its snapshot
func (s *Scanner) walk(ctx context.Context, path string, workers int) ([]models.FileRecord, error) {
	cfg := s.config

	hasher := filesystem.NewHasher(s.fs, cfg.HashBufferBytes(), cfg.LowerDigest())
	walker := filesystem.NewWalker(filesystem.WalkOptions{
		Workers: workers,
		Exclude: cfg.Exclude,
		Hash:    cfg.UseHash,
	}, hasher, s.logger)
	walker.SetFileSystem(s.fs)

	walker.SetSkipCallback(func(entry models.SkippedEntry) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.results.AddSkipped(entry)
	})
	walker.SetFileCallback(func(count int, file string) {
		s.throttledProgress("walking", count, 0, file, count%100 == 0)
	})

	s.reportProgress("walking", 0, 0, "Walking directory tree...")
	walkStart := time.Now()

	inv, err := walker.Walk(ctx, path)
	if err != nil {
		return nil, err
	}
	records := inv.Snapshot()

	stats := walker.Stats()
	s.results.TotalFiles = len(records)
	s.results.TotalDirs = int(stats.Dirs)
	s.results.Stats.BytesHashed = uint64(stats.BytesHashed)
	s.results.Stats.WalkDuration = time.Since(walkStart)

	// traversal order is not deterministic
	sort.Slice(s.results.Skipped, func(i, j int) bool {
		return s.results.Skipped[i].Path < s.results.Skipped[j].Path
	})

	s.reportProgress("walking", len(records), len(records), fmt.Sprintf("Found %d files", len(records)))
	return records, nil
}

// scorer picks the name scorer for the run
func (s *Scanner) scorer() duplicates.Scorer {
	if s.config.ExactNames {
		return duplicates.ExactScorer{}
	}
	return duplicates.NewFuzzyScorer()
}

// calculateStats calculates final statistics
func (s *Scanner) calculateStats(records []models.FileRecord) {
	stats := s.results.Stats

	for _, r := range records {
		stats.TotalSize += r.Size
		if r.Size > stats.LargestFileSize || stats.LargestFile == "" {
			stats.LargestFileSize = r.Size
			stats.LargestFile = r.Path
		}
	}
	if len(records) > 0 {
		stats.AverageFileSize = stats.TotalSize / uint64(len(records))
	}

	duration := s.results.Duration.Seconds()
	if duration > 0 {
		stats.FilesPerSecond = float64(s.results.TotalFiles) / duration
	}

	// Get memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.MemoryUsed = m.Alloc
}
