package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Report summarizes one generation run.
type Report struct {
	View             string `yaml:"view"`
	OutputFile       string `yaml:"outputfile"`
	Rows             int    `yaml:"rows"`
	ImagesDownloaded int    `yaml:"imagesdownloaded"`
	ImagesCached     int    `yaml:"imagescached"`
	ImagesSkipped    int    `yaml:"imagesskipped"`
	Duration         string `yaml:"duration"`
	Timestamp        string `yaml:"timestamp"`
}

// Save writes the report as YAML.
func (r *Report) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
