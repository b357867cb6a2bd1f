// Package config loads and validates the herald configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// PathsConfig holds the directory roots the documentation pipeline and the
// plugin manager operate on.
type PathsConfig struct {
	PackagesDir     string `yaml:"packages_dir"`
	PackagesDocsDir string `yaml:"packages_docs_dir"`
	CustomDir       string `yaml:"custom_dir"`
	CustomDocsDir   string `yaml:"custom_docs_dir"`
	PluginsDir      string `yaml:"plugins_dir"`
	PluginsDocsDir  string `yaml:"plugins_docs_dir"`
	DataDir         string `yaml:"data_dir"`
}

// ConsoleConfig configures the HTTP console bridge.
type ConsoleConfig struct {
	Listen string `yaml:"listen"`
	Token  string `yaml:"token"`
}

// AuditConfig configures the dispatch audit log. An empty path disables it.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig configures the delayed-execution scheduler.
type SchedulerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Config is the root configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Paths     PathsConfig     `yaml:"paths"`
	Console   ConsoleConfig   `yaml:"console"`
	Audit     AuditConfig     `yaml:"audit"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// Defaults returns the configuration used when no file overrides a value.
// Everything roots under the working directory so a fresh install comes up
// without any configuration at all.
func Defaults() *Config {
	return &Config{
		LogLevel: "INFO",
		Paths: PathsConfig{
			PackagesDir:     "packages",
			PackagesDocsDir: filepath.Join("docs", "herald"),
			CustomDir:       filepath.Join("packages", "custom"),
			CustomDocsDir:   filepath.Join("docs", "custom"),
			PluginsDir:      "plugins",
			PluginsDocsDir:  filepath.Join("docs", "plugins"),
			DataDir:         "data",
		},
		Console: ConsoleConfig{
			Listen: "127.0.0.1:27500",
		},
		Audit: AuditConfig{
			Path: filepath.Join("data", "herald.db"),
		},
		Scheduler: SchedulerConfig{
			TickInterval: 100 * time.Millisecond,
		},
	}
}

// Load reads and parses configuration from a file, applying defaults for
// anything unset and verifying the directory's integrity checksums when
// present.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := VerifyConfigDir(filepath.Dir(absPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the loaded configuration for unusable values.
func validate(cfg *Config) error {
	paths := map[string]string{
		"paths.packages_dir":      cfg.Paths.PackagesDir,
		"paths.packages_docs_dir": cfg.Paths.PackagesDocsDir,
		"paths.custom_dir":        cfg.Paths.CustomDir,
		"paths.custom_docs_dir":   cfg.Paths.CustomDocsDir,
		"paths.plugins_dir":       cfg.Paths.PluginsDir,
		"paths.plugins_docs_dir":  cfg.Paths.PluginsDocsDir,
		"paths.data_dir":          cfg.Paths.DataDir,
	}
	for key, value := range paths {
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if cfg.Scheduler.TickInterval <= 0 {
		return fmt.Errorf("scheduler.tick_interval must be positive")
	}
	return nil
}
