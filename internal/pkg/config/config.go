package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang-ifrename/internal/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRulesFile holds the static rules written by the administrator.
	DefaultRulesFile = "/etc/ifrename/static-rules.conf"
	// DefaultStateFile holds the names resolved at the last boot.
	DefaultStateFile = "/var/lib/ifrename/state.json"
	// DefaultSysfsNet is where the kernel exposes network interfaces.
	DefaultSysfsNet = "/sys/class/net"
)

// Config represents the main configuration structure
type Config struct {
	Logging   logging.LogConfig `yaml:"logging"`
	RulesFile string            `yaml:"rules_file"`
	StateFile string            `yaml:"state_file"`
	SysfsNet  string            `yaml:"sysfs_net"`
	DryRun    bool              `yaml:"dry_run"`
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from a YAML file. Unset settings take their defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.RulesFile == "" {
		c.RulesFile = DefaultRulesFile
	}
	if c.StateFile == "" {
		c.StateFile = DefaultStateFile
	}
	if c.SysfsNet == "" {
		c.SysfsNet = DefaultSysfsNet
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, path := range map[string]string{
		"rules_file": c.RulesFile,
		"state_file": c.StateFile,
		"sysfs_net":  c.SysfsNet,
	} {
		if path == "" {
			return fmt.Errorf("%s is required", name)
		}
		if !filepath.IsAbs(path) {
			return fmt.Errorf("%s must be an absolute path, got %s", name, path)
		}
	}
	if filepath.Clean(c.RulesFile) == filepath.Clean(c.StateFile) {
		return fmt.Errorf("rules_file and state_file must differ")
	}
	return nil
}
