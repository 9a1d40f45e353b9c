// Package config loads conversion defaults from a YAML file. Flags always
// override config values; config values override built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpetools/mpe2pdf/internal/fileutil"
	"github.com/mpetools/mpe2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds the persistent defaults for document conversion. Every field
// is optional; the zero value for a field means "use the built-in default".
type Config struct {
	Engine   string `yaml:"engine"`   // "auto", "browser", "static"
	Theme    string `yaml:"theme"`    // "mpe", "github", "minimal"
	Math     string `yaml:"math"`     // "none", "mathjax", "katex"
	Mermaid  *bool  `yaml:"mermaid"`  // nil = enabled
	PageSize string `yaml:"pageSize"` // "a4", "letter", "legal"
	Margin   string `yaml:"margin"`   // CSS shorthand, e.g. "20mm" or "1in 15mm"
	CSSPath  string `yaml:"cssPath"`  // path to a user stylesheet
	Timeout  int    `yaml:"timeout"`  // browser render timeout in seconds
}

// DefaultConfig returns the built-in defaults: auto engine, mpe theme,
// MathJax typesetting, Mermaid enabled, A4 with 20mm margins.
func DefaultConfig() *Config {
	return &Config{
		Engine:   "auto",
		Theme:    "mpe",
		Math:     "mathjax",
		PageSize: "a4",
		Margin:   "20mm",
		Timeout:  30,
	}
}

// MermaidEnabled resolves the optional mermaid field, defaulting to true.
func (c *Config) MermaidEnabled() bool {
	if c.Mermaid == nil {
		return true
	}
	return *c.Mermaid
}

// Validate checks value ranges that do not depend on the render pipeline.
// Enum values are validated downstream where the enums live.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout: must be non-negative, got %d", c.Timeout)
	}
	if c.CSSPath != "" && !fileutil.FileExists(c.CSSPath) {
		return fmt.Errorf("cssPath: no such file: %s", c.CSSPath)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A nameOrPath containing a path separator is treated as a file path;
// otherwise it is searched as a name in the current directory and the user
// config directory. A missing file is an error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Extensions tried in order: .yaml, .yml
// Locations tried in order: current directory, ~/.config/mpe2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "mpe2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
