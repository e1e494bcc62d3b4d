// Package config loads pagegen settings from .pagegen/config.yaml and merges
// command-line flags over them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/pagegen/internal/logger"
	"github.com/harrison/pagegen/internal/models"
)

// DefaultPrompt is the prompt path used when none is given
const DefaultPrompt = "src/test/resources/utilities/mcp/login.prompt.md"

// Config represents pagegen configuration options
type Config struct {
	// Prompt is the default prompt document path
	Prompt string `yaml:"prompt"`

	// Platform is the default target platform (android or ios)
	Platform string `yaml:"platform"`

	// JavaRoot is the page/steps source root relative to the project root
	JavaRoot string `yaml:"java_root"`

	// ResRoot is the resource root relative to the project root
	ResRoot string `yaml:"res_root"`

	// PackagePages is the project's page-object package, used when neither
	// the caller nor the prompt names one
	PackagePages string `yaml:"package_pages"`

	// PackageSteps is the project's step-definitions package, used when
	// neither the caller nor the prompt names one
	PackageSteps string `yaml:"package_steps"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Prompt:   DefaultPrompt,
		Platform: string(models.PlatformAndroid),
		JavaRoot: "src/test/java",
		ResRoot:  "src/test/resources",
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from path.
// A missing file yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Only non-empty values from the file replace defaults
	cfg.merge(fileCfg)
	return cfg, nil
}

// LoadConfigFromDir loads .pagegen/config.yaml under dir
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".pagegen", "config.yaml"))
}

func (c *Config) merge(other Config) {
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.Platform != "" {
		c.Platform = other.Platform
	}
	if other.JavaRoot != "" {
		c.JavaRoot = other.JavaRoot
	}
	if other.ResRoot != "" {
		c.ResRoot = other.ResRoot
	}
	if other.PackagePages != "" {
		c.PackagePages = other.PackagePages
	}
	if other.PackageSteps != "" {
		c.PackageSteps = other.PackageSteps
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// Flags carries command-line values; nil means the flag was not given
type Flags struct {
	Prompt   *string
	Platform *string
	JavaRoot *string
	ResRoot  *string
	LogLevel *string
}

// MergeWithFlags applies every non-nil flag over the configuration, so
// command-line values take precedence over the config file.
func (c *Config) MergeWithFlags(f Flags) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Prompt, f.Prompt)
	set(&c.Platform, f.Platform)
	set(&c.JavaRoot, f.JavaRoot)
	set(&c.ResRoot, f.ResRoot)
	set(&c.LogLevel, f.LogLevel)
}

// Validate checks the log level and output roots. Platform is not checked;
// PlatformValue maps anything but ios to android.
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}
	if c.JavaRoot == "" {
		return fmt.Errorf("java_root cannot be empty")
	}
	if c.ResRoot == "" {
		return fmt.Errorf("res_root cannot be empty")
	}
	return nil
}

// ProjectDefaults returns the configured packages as the lowest-precedence
// naming hints
func (c *Config) ProjectDefaults() models.NameHints {
	return models.NameHints{
		PackagePages: c.PackagePages,
		PackageSteps: c.PackageSteps,
	}
}

// PlatformValue returns the configured platform; unknown values map to android
func (c *Config) PlatformValue() models.Platform {
	return models.ParsePlatform(c.Platform)
}
