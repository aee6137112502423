package duplicates

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/IvanShishkin/duphound/pkg/models"
	"go.uber.org/zap"
)

// DefaultThreshold is the default inclusive lower bound for name scores
const DefaultThreshold = 90

// parallelMin is the smallest remaining slice worth splitting across workers
const parallelMin = 512

// Options configures an Engine
type Options struct {
	Threshold int         // inclusive minimum name score
	Policy    MatchPolicy // content condition
	Workers   int         // goroutines scanning candidates of one anchor
	Scorer    Scorer      // name scorer, fuzzy by default
}

// Engine groups inventory records into duplicate clusters
type Engine struct {
	opts     Options
	logger   *zap.Logger
	progress func(done, total int)
}

// NewEngine creates a duplicate engine
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if opts.Scorer == nil {
		opts.Scorer = NewFuzzyScorer()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts, logger: logger}
}

// SetProgressCallback registers a function called after each anchor
func (e *Engine) SetProgressCallback(cb func(done, total int)) {
	e.progress = cb
}

// SortRecords returns a copy of records ordered by name, then size, then path
func SortRecords(records []models.FileRecord) []models.FileRecord {
	sorted := make([]models.FileRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Path < b.Path
	})
	return sorted
}

// FindDuplicates clusters records and returns the clusters with the total
// wasted bytes. Each record is the anchor of at most one cluster or a member
// of at most one cluster, never both.
func (e *Engine) FindDuplicates(ctx context.Context, records []models.FileRecord) ([]models.DuplicateCluster, uint64, error) {
	sorted := SortRecords(records)
	n := len(sorted)

	consumed := make([]bool, n)
	match := make([]bool, n)

	var clusters []models.DuplicateCluster
	var wasted uint64

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		if !consumed[i] {
			e.scan(sorted, consumed, match, i)

			var members []models.FileRecord
			for j := i + 1; j < n; j++ {
				if match[j] {
					members = append(members, sorted[j])
					consumed[j] = true
					match[j] = false
				}
			}

			if len(members) > 0 {
				cluster := models.NewDuplicateCluster(sorted[i], members)
				clusters = append(clusters, cluster)
				wasted += cluster.WastedBytes

				e.logger.Debug("Duplicate cluster",
					zap.String("representative", sorted[i].Path),
					zap.Int("members", len(members)),
					zap.Uint64("wasted_bytes", cluster.WastedBytes))
			}
		}

		if e.progress != nil {
			e.progress(i+1, n)
		}
	}

	e.logger.Debug("Clustering complete",
		zap.Int("records", n),
		zap.Int("clusters", len(clusters)),
		zap.String("policy", e.opts.Policy.String()),
		zap.Uint64("wasted_bytes", wasted))

	return clusters, wasted, nil
}

// scan marks in match every unconsumed record after anchor i that duplicates it.
// Large slices are split into contiguous chunks, one goroutine each; chunks
// write disjoint slots and only read the rest.
func (e *Engine) scan(sorted []models.FileRecord, consumed, match []bool, i int) {
	start := i + 1
	rest := len(sorted) - start
	if rest <= 0 {
		return
	}

	anchor := sorted[i]
	check := func(from, to int) {
		for j := from; j < to; j++ {
			if !consumed[j] && e.isDuplicate(anchor, sorted[j]) {
				match[j] = true
			}
		}
	}

	workers := e.opts.Workers
	if workers == 1 || rest < parallelMin {
		check(start, len(sorted))
		return
	}

	chunk := (rest + workers - 1) / workers
	var wg sync.WaitGroup
	for from := start; from < len(sorted); from += chunk {
		to := from + chunk
		if to > len(sorted) {
			to = len(sorted)
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			check(from, to)
		}(from, to)
	}
	wg.Wait()
}

func (e *Engine) isDuplicate(anchor, candidate models.FileRecord) bool {
	if !e.opts.Policy.accepts(anchor, candidate) {
		return false
	}
	score, ok := e.opts.Scorer.Score(candidate.Name, anchor.Name)
	return ok && score >= e.opts.Threshold
}
