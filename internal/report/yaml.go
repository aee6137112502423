package report

import (
	"os"

	"github.com/IvanShishkin/duphound/pkg/models"
	"gopkg.in/yaml.v3"
)

// YAMLReport mirrors JSONReport for YAML output
type YAMLReport struct {
	models.ScanResults `yaml:",inline"`
	Entries            []Entry `yaml:"entries"`
}

// generateYAML generates a YAML report
func (g *Generator) generateYAML(results *models.ScanResults, entries []Entry, outputFile string) error {
	report := &YAMLReport{
		ScanResults: *results,
		Entries:     entries,
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
