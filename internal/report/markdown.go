package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/duphound/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(results *models.ScanResults, entries []Entry, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Duphound Duplicate File Report v%s\n\n", results.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", results.ScanPath))
	sb.WriteString(fmt.Sprintf("| Policy | %s |\n", describeSettings(results.Settings)))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", results.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| End Time | %s |\n", results.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(results.Duration)))
	sb.WriteString(fmt.Sprintf("| Total Files | %d |\n", results.TotalFiles))
	sb.WriteString(fmt.Sprintf("| Skipped Entries | %d |\n", results.SkippedFiles))
	sb.WriteString(fmt.Sprintf("| Duplicate Files | %d |\n", results.DuplicateFiles))
	sb.WriteString(fmt.Sprintf("| **Wasted Space** | **%s** |\n", FormatBytes(results.TotalWastedBytes)))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString("> ✅ **No duplicates found**\n\n")
	} else {
		sb.WriteString("## Duplicates\n\n")
		for i, e := range entries {
			sb.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, markdownEscape(e.DisplayName)))
			sb.WriteString(fmt.Sprintf("**Size:** %s &nbsp; **Duplicates:** %d\n\n", e.SizeLabel, e.Count))
			for j, p := range e.DuplicatePaths {
				marker := ""
				if j == 0 {
					marker = " *(kept)*"
				}
				sb.WriteString(fmt.Sprintf("- `%s`%s\n", p, marker))
			}
			sb.WriteString("\n")
		}
	}

	if len(results.Skipped) > 0 {
		sb.WriteString("## Skipped Entries\n\n")
		sb.WriteString("| Kind | Path | Error |\n")
		sb.WriteString("|------|------|-------|\n")
		for _, s := range results.Skipped {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", s.Kind, s.Path, markdownEscape(s.Error)))
		}
		sb.WriteString("\n")
	}

	// Performance stats
	if results.Stats != nil {
		sb.WriteString("## Performance\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Files/Second | %.2f |\n", results.Stats.FilesPerSecond))
		sb.WriteString(fmt.Sprintf("| Bytes Hashed | %s |\n", FormatBytes(results.Stats.BytesHashed)))
		sb.WriteString(fmt.Sprintf("| Workers Used | %d |\n", results.Stats.WorkersUsed))
		sb.WriteString(fmt.Sprintf("| Memory Used | %.2f MB |\n", float64(results.Stats.MemoryUsed)/(1024*1024)))
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString("---\n\n")
	sb.WriteString("*Generated by duphound*\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// markdownEscape escapes characters that break table cells and headings
func markdownEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
