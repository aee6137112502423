package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/duphound/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(results *models.ScanResults, entries []Entry, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("  DUPHOUND DUPLICATE FILE REPORT v%s\n", results.Version))
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", results.ScanPath))
	sb.WriteString(fmt.Sprintf("Policy:           %s\n", describeSettings(results.Settings)))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", results.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(results.Duration)))
	sb.WriteString(fmt.Sprintf("Directories:      %d\n", results.TotalDirs))
	sb.WriteString(fmt.Sprintf("Total Files:      %d\n", results.TotalFiles))
	sb.WriteString(fmt.Sprintf("Skipped Entries:  %d\n", results.SkippedFiles))
	sb.WriteString(fmt.Sprintf("Clusters:         %d\n", len(results.Clusters)))
	sb.WriteString(fmt.Sprintf("Duplicate Files:  %d\n", results.DuplicateFiles))
	sb.WriteString(fmt.Sprintf("Wasted Space:     %s (%d bytes)\n", FormatBytes(results.TotalWastedBytes), results.TotalWastedBytes))
	sb.WriteString("\n")

	// Duplicates
	if len(entries) > 0 {
		sb.WriteString("DUPLICATES\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n")
		sb.WriteString(RenderTable(entries))
		sb.WriteString("\n")
	} else {
		sb.WriteString("No duplicates found.\n\n")
	}

	// Skipped
	if len(results.Skipped) > 0 {
		sb.WriteString("SKIPPED ENTRIES\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, s := range results.Skipped {
			sb.WriteString(fmt.Sprintf("[%s] %s\n", s.Kind, s.Path))
			sb.WriteString(fmt.Sprintf("    %s\n", s.Error))
		}
		sb.WriteString("\n")
	}

	// Performance stats
	if results.Stats != nil {
		sb.WriteString("PERFORMANCE\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		sb.WriteString(fmt.Sprintf("Walk Time:        %s\n", FormatDuration(results.Stats.WalkDuration)))
		sb.WriteString(fmt.Sprintf("Cluster Time:     %s\n", FormatDuration(results.Stats.ClusterDuration)))
		sb.WriteString(fmt.Sprintf("Files/Second:     %.2f\n", results.Stats.FilesPerSecond))
		sb.WriteString(fmt.Sprintf("Bytes Hashed:     %s\n", FormatBytes(results.Stats.BytesHashed)))
		sb.WriteString(fmt.Sprintf("Workers Used:     %d\n", results.Stats.WorkersUsed))
		sb.WriteString(fmt.Sprintf("Memory Used:      %.2f MB\n", float64(results.Stats.MemoryUsed)/(1024*1024)))
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	// Write to file
	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
