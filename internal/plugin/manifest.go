package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/herald/internal/report"
)

const manifestFilename = "plugin.yaml"

// SettingDecl declares a public configuration setting a plugin exposes. It
// renders as the setting variant in the plugin listing.
type SettingDecl struct {
	Name    string `yaml:"name"`
	Help    string `yaml:"help,omitempty"`
	Default string `yaml:"default,omitempty"`
}

// Manifest is the optional plugin.yaml descriptor of an installed plugin.
// Plugins without a manifest still load; they just list by bare name.
type Manifest struct {
	Name        string        `yaml:"name"`
	VerboseName string        `yaml:"verbose_name,omitempty"`
	Version     string        `yaml:"version,omitempty"`
	Author      string        `yaml:"author,omitempty"`
	URL         string        `yaml:"url,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Settings    []SettingDecl `yaml:"settings,omitempty"`
}

// loadManifest reads and validates the manifest of the plugin directory.
func loadManifest(pluginDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(pluginDir, manifestFilename))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if strings.TrimSpace(manifest.Name) == "" {
		manifest.Name = filepath.Base(pluginDir)
	}
	return &manifest, nil
}

// InfoItems returns the manifest's displayable information in declaration
// order, ready for the listing report.
func (m *Manifest) InfoItems() []report.InfoItem {
	var items []report.InfoItem

	add := func(key, value string) {
		if value != "" {
			items = append(items, report.InfoItem{Key: key, Value: report.Text(value)})
		}
	}
	add("verbose_name", m.VerboseName)
	add("author", m.Author)
	add("version", m.Version)
	add("url", m.URL)
	add("description", m.Description)

	for _, setting := range m.Settings {
		items = append(items, report.InfoItem{
			Key: "public_setting",
			Value: report.Setting{
				Name:    setting.Name,
				Help:    setting.Help,
				Current: setting.Default,
			},
		})
	}
	return items
}
