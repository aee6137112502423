package report

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/IvanShishkin/duphound/pkg/models"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Duphound Duplicate File Report</title>
    <style>
        :root {
            --bg-primary: #0C0C0C;
            --bg-secondary: #161616;
            --bg-tertiary: #1C1C1C;
            --text-primary: #ECECEC;
            --text-secondary: #A0A0A0;
            --text-muted: #6B6B6B;
            --accent: #D97706;
            --border-color: #2A2A2A;
            --warn-color: #EAB308;
            --ok-color: #22C55E;
        }
        body {
            margin: 0;
            padding: 32px;
            background: var(--bg-primary);
            color: var(--text-primary);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { color: var(--accent); font-weight: 600; }
        h2 { border-bottom: 1px solid var(--border-color); padding-bottom: 8px; }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; }
        .stat-box { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 8px; padding: 16px; }
        .stat-label { color: var(--text-muted); font-size: 12px; text-transform: uppercase; }
        .stat-value { font-size: 22px; margin-top: 4px; }
        .cluster { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 8px; padding: 16px; margin: 12px 0; }
        .cluster-title { font-weight: 600; }
        .cluster-meta { color: var(--text-secondary); font-size: 13px; margin: 4px 0 8px; }
        .path { font-family: "JetBrains Mono", monospace; font-size: 13px; padding: 2px 0; }
        .path.kept { color: var(--ok-color); }
        .skipped { color: var(--warn-color); }
        table { width: 100%; border-collapse: collapse; }
        td, th { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--border-color); font-size: 13px; }
        .footer { color: var(--text-muted); margin-top: 32px; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
`

// generateHTML generates an HTML report
func (g *Generator) generateHTML(results *models.ScanResults, entries []Entry, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(htmlHead)
	sb.WriteString("        <h1>Duplicate File Report</h1>\n")
	sb.WriteString(fmt.Sprintf("        <p class=\"cluster-meta\">%s &middot; %s</p>\n",
		html.EscapeString(results.ScanPath), html.EscapeString(describeSettings(results.Settings))))

	// Summary
	sb.WriteString("        <div class=\"stats\">\n")
	writeStatBox(&sb, "Files", fmt.Sprintf("%d", results.TotalFiles))
	writeStatBox(&sb, "Clusters", fmt.Sprintf("%d", len(entries)))
	writeStatBox(&sb, "Duplicate files", fmt.Sprintf("%d", results.DuplicateFiles))
	writeStatBox(&sb, "Wasted space", FormatBytes(results.TotalWastedBytes))
	writeStatBox(&sb, "Skipped", fmt.Sprintf("%d", results.SkippedFiles))
	writeStatBox(&sb, "Duration", FormatDuration(results.Duration))
	sb.WriteString("        </div>\n")

	// Clusters
	sb.WriteString("        <h2>Duplicates</h2>\n")
	if len(entries) == 0 {
		sb.WriteString("        <p>No duplicates found.</p>\n")
	}
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("        <div class=\"cluster\" id=\"cluster-%d\">\n", i+1))
		sb.WriteString(fmt.Sprintf("            <div class=\"cluster-title\">#%d %s</div>\n", i+1, html.EscapeString(e.DisplayName)))
		sb.WriteString(fmt.Sprintf("            <div class=\"cluster-meta\">%s &middot; %d duplicate(s)</div>\n", html.EscapeString(e.SizeLabel), e.Count))
		for j, p := range e.DuplicatePaths {
			class := "path"
			if j == 0 {
				class = "path kept"
			}
			sb.WriteString(fmt.Sprintf("            <div class=\"%s\">%s</div>\n", class, html.EscapeString(p)))
		}
		sb.WriteString("        </div>\n")
	}

	// Skipped
	if len(results.Skipped) > 0 {
		sb.WriteString("        <h2 class=\"skipped\">Skipped Entries</h2>\n")
		sb.WriteString("        <table>\n            <tr><th>Kind</th><th>Path</th><th>Error</th></tr>\n")
		for _, s := range results.Skipped {
			sb.WriteString(fmt.Sprintf("            <tr><td>%s</td><td class=\"path\">%s</td><td>%s</td></tr>\n",
				html.EscapeString(string(s.Kind)), html.EscapeString(s.Path), html.EscapeString(s.Error)))
		}
		sb.WriteString("        </table>\n")
	}

	sb.WriteString(fmt.Sprintf(`        <div class="footer">Generated by duphound v%s on %s</div>
    </div>
</body>
</html>`, html.EscapeString(results.Version), results.EndTime.Format("2006-01-02 15:04:05")))

	// Write to file
	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

func writeStatBox(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf(`            <div class="stat-box">
                <div class="stat-label">%s</div>
                <div class="stat-value">%s</div>
            </div>
`, html.EscapeString(label), html.EscapeString(value)))
}
