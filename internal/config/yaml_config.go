package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// The site catalogue and scoring weights are easier to manage in YAML than env vars.
type YAMLConfig struct {
	TrackedSite string        `yaml:"tracked_site"`
	Sites       []SiteConfig  `yaml:"sites"`
	Scoring     ScoringConfig `yaml:"scoring"`
}

// SiteConfig declares a site and the export files holding its keywords.
type SiteConfig struct {
	Name        string `yaml:"name"`                   // e.g. "timeout.com"
	DisplayName string `yaml:"display_name,omitempty"` // e.g. "Time Out Tokyo"
	Files       string `yaml:"files,omitempty"`        // glob matched against export file names
}

// ScoringConfig holds opportunity score weights.
type ScoringConfig struct {
	TrafficGap float64 `yaml:"traffic_gap"`
	Volume     float64 `yaml:"volume"`
	Difficulty float64 `yaml:"difficulty"`
}

// IsZero reports whether no weight was configured.
func (s ScoringConfig) IsZero() bool {
	return s.TrafficGap == 0 && s.Volume == 0 && s.Difficulty == 0
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Sites {
		if cfg.Sites[i].DisplayName == "" {
			cfg.Sites[i].DisplayName = cfg.Sites[i].Name
		}
	}

	return &cfg, nil
}

// GetSite finds a site by name.
func (c *YAMLConfig) GetSite(name string) *SiteConfig {
	if c == nil {
		return nil
	}
	for i := range c.Sites {
		if c.Sites[i].Name == name {
			return &c.Sites[i]
		}
	}
	return nil
}

// SiteForFile returns the site whose file glob matches the base name of path.
func (c *YAMLConfig) SiteForFile(path string) *SiteConfig {
	if c == nil {
		return nil
	}
	base := strings.ToLower(filepath.Base(path))
	for i := range c.Sites {
		pattern := strings.ToLower(c.Sites[i].Files)
		if pattern == "" {
			continue
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return &c.Sites[i]
		}
	}
	return nil
}
