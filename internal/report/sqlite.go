package report

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/IvanShishkin/duphound/pkg/models"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scan_path TEXT NOT NULL,
	version TEXT,
	started_at DATETIME,
	finished_at DATETIME,
	duration_ms INTEGER,
	total_files INTEGER,
	total_dirs INTEGER,
	skipped INTEGER,
	duplicate_files INTEGER,
	wasted_bytes INTEGER,
	score_threshold INTEGER,
	use_hash BOOLEAN,
	match_size BOOLEAN,
	exact_names BOOLEAN,
	digest_case TEXT
);`

const clustersSchema = `
CREATE TABLE IF NOT EXISTS clusters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	size INTEGER,
	size_label TEXT,
	digest TEXT,
	member_count INTEGER,
	wasted_bytes INTEGER
);`

const membersSchema = `
CREATE TABLE IF NOT EXISTS members (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cluster_id INTEGER NOT NULL REFERENCES clusters(id),
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	size INTEGER,
	modified_unix INTEGER,
	read_only BOOLEAN,
	digest TEXT
);
CREATE INDEX IF NOT EXISTS idx_members_cluster ON members(cluster_id);`

const skippedSchema = `
CREATE TABLE IF NOT EXISTS skipped (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	path TEXT NOT NULL,
	kind TEXT NOT NULL,
	error TEXT
);`

// generateSQLite exports the run into a fresh SQLite database
func (g *Generator) generateSQLite(results *models.ScanResults, entries []Entry, outputFile string) error {
	if err := os.Remove(outputFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old database: %w", err)
	}

	db, err := sql.Open("sqlite", outputFile)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pragmas := []string{
		"PRAGMA journal_mode=DELETE;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			g.logger.Warn("Failed to set pragma", zap.String("pragma", p), zap.Error(err))
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, schema := range []string{runsSchema, clustersSchema, membersSchema, skippedSchema} {
		if _, err := tx.Exec(schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	s := results.Settings
	res, err := tx.Exec(`INSERT INTO runs (scan_path, version, started_at, finished_at, duration_ms, total_files, total_dirs,
		skipped, duplicate_files, wasted_bytes, score_threshold, use_hash, match_size, exact_names, digest_case)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.ScanPath, results.Version, results.StartTime, results.EndTime, results.Duration.Milliseconds(),
		results.TotalFiles, results.TotalDirs, results.SkippedFiles, results.DuplicateFiles, int64(results.TotalWastedBytes),
		s.ScoreThreshold, s.UseHash, s.MatchSize, s.ExactNames, s.DigestCase)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	clusterStmt, err := tx.Prepare(`INSERT INTO clusters (run_id, name, path, size, size_label, digest, member_count, wasted_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer clusterStmt.Close()

	memberStmt, err := tx.Prepare(`INSERT INTO members (cluster_id, name, path, size, modified_unix, read_only, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer memberStmt.Close()

	for i, c := range results.Clusters {
		rep := c.Representative
		res, err := clusterStmt.Exec(runID, rep.Name, rep.Path, int64(rep.Size), entries[i].SizeLabel, rep.Digest,
			len(c.Members), int64(c.WastedBytes))
		if err != nil {
			return fmt.Errorf("failed to insert cluster %s: %w", rep.Path, err)
		}
		clusterID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, m := range c.Members {
			if _, err := memberStmt.Exec(clusterID, m.Name, m.Path, int64(m.Size), int64(m.ModifiedUnix), m.ReadOnly, m.Digest); err != nil {
				return fmt.Errorf("failed to insert member %s: %w", m.Path, err)
			}
		}
	}

	for _, sk := range results.Skipped {
		if _, err := tx.Exec("INSERT INTO skipped (run_id, path, kind, error) VALUES (?, ?, ?, ?)",
			runID, sk.Path, string(sk.Kind), sk.Error); err != nil {
			return fmt.Errorf("failed to insert skipped entry: %w", err)
		}
	}

	return tx.Commit()
}
