package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default connection settings. The server URL and output directory have
// sensible defaults; the API token never does.
const (
	DefaultServerURL = "https://cloud.seatable.io"
	DefaultOutputDir = "art"
)

// Settings holds the process-wide connection parameters shared by every
// catalog config: which SeaTable server and table to pull from, and where
// generated files land. Values come from an optional YAML file, overridden
// by environment variables (SEATABLE_SERVER_URL, SEATABLE_API_TOKEN,
// SEATABLE_TABLE_NAME, CATALOG_OUTPUT_DIR).
type Settings struct {
	ServerURL string `yaml:"server_url"`
	APIToken  string `yaml:"api_token"`
	TableName string `yaml:"table_name"`
	OutputDir string `yaml:"output_dir"`
}

// LoadSettings builds connection settings from the optional YAML file at
// path (empty path means environment only) and the environment.
func LoadSettings(path string) (*Settings, error) {
	settings := &Settings{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("invalid YAML in settings file %s: %w", path, err)
		}
	}

	if v := os.Getenv("SEATABLE_SERVER_URL"); v != "" {
		settings.ServerURL = v
	}
	if v := os.Getenv("SEATABLE_API_TOKEN"); v != "" {
		settings.APIToken = v
	}
	if v := os.Getenv("SEATABLE_TABLE_NAME"); v != "" {
		settings.TableName = v
	}
	if v := os.Getenv("CATALOG_OUTPUT_DIR"); v != "" {
		settings.OutputDir = v
	}

	if settings.ServerURL == "" {
		settings.ServerURL = DefaultServerURL
	}
	settings.ServerURL = strings.TrimRight(settings.ServerURL, "/")
	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}

	var missing []string
	if settings.APIToken == "" {
		missing = append(missing, "api_token (SEATABLE_API_TOKEN)")
	}
	if settings.TableName == "" {
		missing = append(missing, "table_name (SEATABLE_TABLE_NAME)")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required connection settings: %s", strings.Join(missing, ", "))
	}

	return settings, nil
}
