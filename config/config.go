// Package config loads the enumlabelgen configuration.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pablor21/enumlabel/annotations"
	"github.com/pablor21/enumlabel/logger"
	"gopkg.in/yaml.v3"
)

//go:embed config.yml
var defaultConfigFile embed.FS

type Config struct {
	Packages         []string         `yaml:"packages"`
	AnnotationPrefix string           `yaml:"annotation_prefix"`
	Output           string           `yaml:"output"`
	FlagsDelimiter   string           `yaml:"flags_delimiter"`
	LogLevel         logger.LogLevel  `yaml:"log_level"`
	ScanOptions      ScanOptions      `yaml:"scan_options"`
	Validator        ValidationConfig `yaml:"validator"`

	// Directory of the loaded config file; packages are relative to it.
	ConfigDir string `yaml:"-"`
}

// ScanMode defines which enum types get scanned
type ScanMode string

const (
	ScanModeAnnotated ScanMode = "annotated" // types marked @enum or @flags
	ScanModeAll       ScanMode = "all"       // every integer type with constants
)

type ScanOptions struct {
	Enums             ScanMode `yaml:"enums"`
	IncludeUnexported bool     `yaml:"include_unexported"`
}

type ValidationConfig struct {
	Action annotations.ValidationAction `yaml:"action"`
	Mode   annotations.ValidationMode   `yaml:"mode"`
}

// NewDefaultConfig parses the embedded defaults.
func NewDefaultConfig() *Config {
	config, err := LoadConfigFromFS(defaultConfigFile, "config.yml")
	if err != nil {
		panic("failed to load default config: " + err.Error())
	}
	return config
}

func LoadConfigFromFS(fs embed.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfigFromYAML(data)
}

// LoadConfigFromYAML parses data on its own, without defaults.
func LoadConfigFromYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadConfigFile reads path over the defaults: keys present in the file
// replace the default values, everything else is kept.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	config.ConfigDir = dir

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks values the generator cannot work around.
func (c *Config) Validate() error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("packages: at least one package pattern is required")
	}
	if c.Output == "" || filepath.Ext(c.Output) != ".go" {
		return fmt.Errorf("output: %q must be a .go file name", c.Output)
	}
	if filepath.Base(c.Output) != c.Output {
		return fmt.Errorf("output: %q must be a file name, not a path", c.Output)
	}
	if utf8.RuneCountInString(c.FlagsDelimiter) != 1 {
		return fmt.Errorf("flags_delimiter: %q must be a single character", c.FlagsDelimiter)
	}
	switch c.ScanOptions.Enums {
	case ScanModeAnnotated, ScanModeAll:
	default:
		return fmt.Errorf("scan_options.enums: unknown mode %q", c.ScanOptions.Enums)
	}
	switch c.Validator.Action {
	case "", annotations.ValidationActionDisabled, annotations.ValidationActionWarn, annotations.ValidationActionFail:
	default:
		return fmt.Errorf("validator.action: unknown action %q", c.Validator.Action)
	}
	switch c.Validator.Mode {
	case "", annotations.ValidationModeLax, annotations.ValidationModeStrict:
	default:
		return fmt.Errorf("validator.mode: unknown mode %q", c.Validator.Mode)
	}
	if c.LogLevel != "" && !c.LogLevel.Valid() {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	return nil
}

// Delimiter returns the configured flags delimiter rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.FlagsDelimiter)
	return r
}

// ResolvedPackages returns the package patterns relative to the config directory.
func (c *Config) ResolvedPackages() []string {
	out := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		if c.ConfigDir == "" || filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(c.ConfigDir, p)
	}
	return out
}
