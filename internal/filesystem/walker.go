package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/IvanShishkin/duphound/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WalkOptions controls a Walker
type WalkOptions struct {
	Workers int      // concurrent traversal branches
	Exclude []string // directory names to skip
	Hash    bool     // compute content digests
}

// WalkStats are the counters gathered during one walk
type WalkStats struct {
	Dirs            int64
	Files           int64
	BytesHashed     int64
	MetadataErrors  int64
	TimestampErrors int64
	DirectoryErrors int64
	HashErrors      int64
}

// Walker traverses a directory tree concurrently and builds an Inventory
type Walker struct {
	fs      FileSystem
	hasher  *Hasher
	logger  *zap.Logger
	workers int
	exclude map[string]bool
	hash    bool

	onSkip func(models.SkippedEntry)
	onFile func(count int, path string)

	dirs            atomic.Int64
	files           atomic.Int64
	bytesHashed     atomic.Int64
	metadataErrors  atomic.Int64
	timestampErrors atomic.Int64
	directoryErrors atomic.Int64
	hashErrors      atomic.Int64
}

// NewWalker creates a new filesystem walker
func NewWalker(opts WalkOptions, hasher *Hasher, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range opts.Exclude {
		exclude[dir] = true
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	if hasher == nil {
		hasher = NewHasher(OSFileSystem{}, DefaultBufferSize, false)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Walker{
		fs:      OSFileSystem{},
		hasher:  hasher,
		logger:  logger,
		workers: workers,
		exclude: exclude,
		hash:    opts.Hash,
	}
}

// SetFileSystem replaces the filesystem the walker lists and stats through
func (w *Walker) SetFileSystem(fsys FileSystem) {
	w.fs = fsys
}

// SetSkipCallback registers a function receiving every skipped entry.
// It is called from traversal goroutines and must be safe for concurrent use.
func (w *Walker) SetSkipCallback(cb func(models.SkippedEntry)) {
	w.onSkip = cb
}

// SetFileCallback registers a function called after each record is added.
// It is called from traversal goroutines and must be safe for concurrent use.
func (w *Walker) SetFileCallback(cb func(count int, path string)) {
	w.onFile = cb
}

// Stats returns the counters of the last walk
func (w *Walker) Stats() WalkStats {
	return WalkStats{
		Dirs:            w.dirs.Load(),
		Files:           w.files.Load(),
		BytesHashed:     w.bytesHashed.Load(),
		MetadataErrors:  w.metadataErrors.Load(),
		TimestampErrors: w.timestampErrors.Load(),
		DirectoryErrors: w.directoryErrors.Load(),
		HashErrors:      w.hashErrors.Load(),
	}
}

// Walk traverses root and returns the inventory of regular files below it.
// Only an unreadable root is fatal; every other failure skips the entry or
// subtree and is logged.
func (w *Walker) Walk(ctx context.Context, root string) (*Inventory, error) {
	w.resetStats()
	inv := NewInventory()

	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	entries, err := w.fs.ReadDir(root)
	if err != nil && len(entries) == 0 {
		return inv, fmt.Errorf("%w: %s: %w", ErrRootUnreadable, root, err)
	}
	if err != nil {
		w.skip(root, models.SkipSubdirectory, ErrSubdirectoryUnreadable, err)
	}
	w.dirs.Add(1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	rootErr := w.walkEntries(gctx, g, root, entries, inv)
	if err := g.Wait(); err != nil {
		return inv, err
	}
	if rootErr != nil {
		return inv, rootErr
	}
	if err := ctx.Err(); err != nil {
		return inv, err
	}

	w.logger.Debug("Walk complete",
		zap.String("root", root),
		zap.Int64("dirs", w.dirs.Load()),
		zap.Int64("files", w.files.Load()))

	return inv, nil
}

// walkEntries classifies the entries of dir. Subdirectories are handed to the
// pool when it has room and traversed inline otherwise.
func (w *Walker) walkEntries(ctx context.Context, g *errgroup.Group, dir string, entries []fs.DirEntry, inv *Inventory) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		info, err := w.fs.Lstat(path)
		if err != nil {
			w.skip(path, models.SkipMetadata, ErrEntryMetadataUnavailable, err)
			continue
		}

		mode := info.Mode()
		if !mode.IsDir() && !mode.IsRegular() {
			// symlinks, devices, sockets, pipes
			continue
		}

		modified, err := modifiedUnix(info)
		if err != nil {
			w.skip(path, models.SkipTimestamp, ErrTimestampUnavailable, err)
			continue
		}

		if mode.IsDir() {
			if w.exclude[entry.Name()] {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				continue
			}

			sub := path
			if !g.TryGo(func() error { return w.descend(ctx, g, sub, inv) }) {
				if err := w.descend(ctx, g, sub, inv); err != nil {
					return err
				}
			}
			continue
		}

		if err := w.visitFile(ctx, path, info, modified, inv); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) descend(ctx context.Context, g *errgroup.Group, dir string, inv *Inventory) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.skip(dir, models.SkipSubdirectory, ErrSubdirectoryUnreadable, err)
		if len(entries) == 0 {
			return nil
		}
	}
	w.dirs.Add(1)
	return w.walkEntries(ctx, g, dir, entries, inv)
}

func (w *Walker) visitFile(ctx context.Context, path string, info fs.FileInfo, modified uint64, inv *Inventory) error {
	record := models.FileRecord{
		Path:         path,
		Name:         info.Name(),
		Size:         uint64(info.Size()),
		ModifiedUnix: modified,
		ReadOnly:     info.Mode().Perm()&0o222 == 0,
	}

	if w.hash {
		digest, err := w.hasher.Digest(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			w.skip(path, models.SkipHash, ErrHashFailure, err)
			return nil
		}
		record.Digest = digest
		w.bytesHashed.Add(info.Size())
	}

	count := inv.Add(record)
	w.files.Add(1)
	if w.onFile != nil {
		w.onFile(count, path)
	}
	return nil
}

// skip logs a non-fatal failure and records it
func (w *Walker) skip(path string, kind models.SkipKind, sentinel, cause error) {
	err := cause
	if !errors.Is(cause, sentinel) {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}

	switch kind {
	case models.SkipMetadata:
		w.metadataErrors.Add(1)
	case models.SkipTimestamp:
		w.timestampErrors.Add(1)
	case models.SkipSubdirectory:
		w.directoryErrors.Add(1)
	case models.SkipHash:
		w.hashErrors.Add(1)
	}

	w.logger.Warn("Skipping entry",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Error(err))

	if w.onSkip != nil {
		w.onSkip(models.SkippedEntry{Path: path, Kind: kind, Error: err.Error()})
	}
}

func (w *Walker) resetStats() {
	w.dirs.Store(0)
	w.files.Store(0)
	w.bytesHashed.Store(0)
	w.metadataErrors.Store(0)
	w.timestampErrors.Store(0)
	w.directoryErrors.Store(0)
	w.hashErrors.Store(0)
}

// modifiedUnix returns the modification time in seconds since the epoch.
// Zero and pre-epoch timestamps are rejected rather than clamped.
func modifiedUnix(info fs.FileInfo) (uint64, error) {
	mt := info.ModTime()
	if mt.IsZero() {
		return 0, errors.New("no modification time")
	}
	if mt.Before(time.Unix(0, 0)) {
		return 0, fmt.Errorf("modification time %s predates the epoch", mt.UTC().Format(time.RFC3339))
	}
	return uint64(mt.Unix()), nil
}
