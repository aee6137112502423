package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/duphound/internal/config"
	"github.com/IvanShishkin/duphound/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// maxConsoleSkips caps the skipped entries listed on the console
const maxConsoleSkips = 10

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator renders scan results to the console or to a report file
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	if cfg.ReportFormat != "" && DefaultFileName(cfg.ReportFormat, time.Now()) == "" {
		return nil, fmt.Errorf("unknown report format: %s", cfg.ReportFormat)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects console output
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// DefaultFileName returns the report file name used when no output file is
// configured, or "" for an unknown format
func DefaultFileName(format string, now time.Time) string {
	timestamp := now.Format("20060102-150405")

	var ext string
	switch format {
	case "json":
		ext = "json"
	case "txt", "text":
		ext = "txt"
	case "yaml", "yml":
		ext = "yaml"
	case "html":
		ext = "html"
	case "md", "markdown":
		ext = "md"
	case "sqlite":
		ext = "db"
	default:
		return ""
	}
	return fmt.Sprintf("DUPHOUND-REPORT-%s.%s", timestamp, ext)
}

// Generate renders results and returns the absolute path of the file written,
// if any
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile
	entries := BuildEntries(results.Clusters, g.config.LegacySizeLabels)

	// If no format specified, print to console
	if format == "" {
		g.printConsole(results, entries)
		return g.writeConsoleFile(entries)
	}

	// Generate default filename if not specified
	if outputFile == "" {
		outputFile = DefaultFileName(format, time.Now())
		if outputFile == "" {
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(results, entries, outputFile)
	case "txt", "text":
		err = g.generateText(results, entries, outputFile)
	case "yaml", "yml":
		err = g.generateYAML(results, entries, outputFile)
	case "html":
		err = g.generateHTML(results, entries, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(results, entries, outputFile)
	case "sqlite":
		err = g.generateSQLite(results, entries, outputFile)
	default:
		err = fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// paint wraps s in an ANSI color unless colors are disabled
func (g *Generator) paint(s string, codes ...string) string {
	if g.config.NoColor || len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + colorReset
}

// printConsole prints the summary and the duplicate table
func (g *Generator) printConsole(results *models.ScanResults, entries []Entry) {
	w := g.out
	fmt.Fprintln(w)

	// Summary header
	fmt.Fprintln(w, g.paint("SCAN COMPLETE", colorBold, colorOrange))
	fmt.Fprintln(w)

	// Stats
	fmt.Fprintf(w, "  %s      %s\n", g.paint("Path:", colorGray), results.ScanPath)
	fmt.Fprintf(w, "  %s     %d\n", g.paint("Files:", colorGray), results.TotalFiles)
	fmt.Fprintf(w, "  %s   %d\n", g.paint("Skipped:", colorGray), results.SkippedFiles)
	fmt.Fprintf(w, "  %s    %s\n", g.paint("Policy:", colorGray), describeSettings(results.Settings))
	fmt.Fprintf(w, "  %s  %s\n", g.paint("Duration:", colorGray), FormatDuration(results.Duration))
	fmt.Fprintln(w)

	if len(results.Skipped) > 0 {
		fmt.Fprintln(w, g.paint("  Skipped entries:", colorYellow))
		for i, s := range results.Skipped {
			if i == maxConsoleSkips {
				fmt.Fprintf(w, "    %s\n", g.paint(fmt.Sprintf("... and %d more", len(results.Skipped)-maxConsoleSkips), colorDim))
				break
			}
			fmt.Fprintf(w, "    %s %s\n", g.paint("["+string(s.Kind)+"]", colorDim), s.Path)
		}
		fmt.Fprintln(w)
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s\n", g.paint("✓ No duplicates found", colorBold, colorGreen))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %s\n", g.paint(fmt.Sprintf("⚠ DUPLICATES FOUND: %d files in %d clusters", results.DuplicateFiles, len(entries)), colorBold, colorRed))
	fmt.Fprintln(w)
	fmt.Fprint(w, RenderTable(entries))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", g.paint("Total Size of duplicate files", colorBold, colorGreen), g.paint(FormatBytes(results.TotalWastedBytes), colorBold, colorGreen))
	fmt.Fprintln(w)
}

// writeConsoleFile saves the console table to the configured file
func (g *Generator) writeConsoleFile(entries []Entry) (string, error) {
	if g.config.ConsoleFile == "" {
		return "", nil
	}

	if err := os.WriteFile(g.config.ConsoleFile, []byte(RenderTable(entries)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", g.config.ConsoleFile, err)
	}

	absPath, _ := filepath.Abs(g.config.ConsoleFile)
	return absPath, nil
}

// describeSettings summarizes the matching policy of a run
func describeSettings(s models.ScanSettings) string {
	var parts []string
	switch {
	case s.UseHash:
		parts = append(parts, "sha256 content")
	case s.MatchSize:
		parts = append(parts, "size")
	default:
		parts = append(parts, "name only")
	}
	if s.ExactNames {
		parts = append(parts, "exact names")
	} else {
		parts = append(parts, fmt.Sprintf("name score >= %d", s.ScoreThreshold))
	}
	return strings.Join(parts, ", ")
}
