package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog describes one catalog page: which SeaTable view feeds it and what
// the generated HTML should look like. One JSON config file per catalog.
type Catalog struct {
	ViewName    string `json:"view_name"`
	OutputFile  string `json:"output_file"`
	HeaderLogo  string `json:"header_logo"`
	HeaderTitle string `json:"header_title"`
	PageTitle   string `json:"page_title"`

	// Optional presentation settings.
	IncludePurchaseButton bool   `json:"include_purchase_button"`
	InquiryEmail          string `json:"inquiry_email"`
	PurchaseFormURL       string `json:"purchase_form_url"`
	PublicBaseURL         string `json:"public_base_url"`
}

// LoadCatalog reads and validates a catalog config file. Every required key
// must be present and non-empty; no defaults are substituted for them.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Catalog
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON in config file %s: %w", path, err)
	}

	required := []struct {
		key   string
		value string
	}{
		{"view_name", cfg.ViewName},
		{"output_file", cfg.OutputFile},
		{"header_logo", cfg.HeaderLogo},
		{"header_title", cfg.HeaderTitle},
		{"page_title", cfg.PageTitle},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config fields: %s", strings.Join(missing, ", "))
	}

	return &cfg, nil
}
