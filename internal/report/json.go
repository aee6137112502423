package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/duphound/pkg/models"
)

// JSONReport combines scan results with the rendered report rows
type JSONReport struct {
	*models.ScanResults
	Entries []Entry `json:"entries"`
}

// generateJSON generates a JSON report
func (g *Generator) generateJSON(results *models.ScanResults, entries []Entry, outputFile string) error {
	report := &JSONReport{
		ScanResults: results,
		Entries:     entries,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(outputFile, data, 0644)
}
