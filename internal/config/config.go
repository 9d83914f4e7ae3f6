package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-pageslim/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidPath     = errors.New("invalid path")
)

// NotFoundError lists the locations searched for a config file.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap returns ErrConfigNotFound for errors.Is() matching.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// Default paths, matching the fixed locations the tool has always used.
const (
	DefaultInput       = "source.html"
	DefaultOutput      = "index.html"
	DefaultAssetDir    = "optimized"
	DefaultStylesheet  = "styles.css"
	DefaultImagePrefix = "image_"
)

// Field length limits.
const (
	MaxPathLength = 4096    // PATH_MAX on Linux
	MaxNameLength = 255     // single path component
	MaxConfigSize = 1 << 20 // 1MB of YAML
)

// appConfigDirName is the directory searched under the user config dir.
const appConfigDirName = "go-pageslim"

// Config holds all configuration for a run.
type Config struct {
	Paths       PathsConfig `yaml:"paths"`
	Stylesheet  string      `yaml:"stylesheet"`  // file name inside assetDir
	ImagePrefix string      `yaml:"imagePrefix"` // prefix for extracted image names
}

// PathsConfig defines input and output locations.
type PathsConfig struct {
	Input     string `yaml:"input"`     // saved page to read
	Output    string `yaml:"output"`    // rewritten page to write
	AssetDir  string `yaml:"assetDir"`  // directory receiving images and the stylesheet
	AssetHref string `yaml:"assetHref"` // prefix written into src/href (empty = assetDir relative to output)
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:    DefaultInput,
			Output:   DefaultOutput,
			AssetDir: DefaultAssetDir,
		},
		Stylesheet:  DefaultStylesheet,
		ImagePrefix: DefaultImagePrefix,
	}
}

// Validate checks paths and names.
// Called automatically by LoadConfig, but available for callers who
// assemble a Config from flags or environment variables.
func (c *Config) Validate() error {
	paths := []struct {
		field string
		value string
	}{
		{"paths.input", c.Paths.Input},
		{"paths.output", c.Paths.Output},
		{"paths.assetDir", c.Paths.AssetDir},
		{"paths.assetHref", c.Paths.AssetHref},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
		if strings.ContainsRune(p.value, 0) {
			return fmt.Errorf("%w: %s contains a null byte", ErrInvalidPath, p.field)
		}
	}

	if err := validateFieldLength("stylesheet", c.Stylesheet, MaxNameLength); err != nil {
		return err
	}
	if c.Stylesheet != "" {
		if err := fileutil.ValidateName(c.Stylesheet); err != nil {
			return fmt.Errorf("%w: stylesheet: %v", ErrInvalidPath, err)
		}
	}

	if err := validateFieldLength("imagePrefix", c.ImagePrefix, MaxNameLength); err != nil {
		return err
	}
	if fileutil.IsFilePath(c.ImagePrefix) || strings.ContainsRune(c.ImagePrefix, 0) {
		return fmt.Errorf("%w: imagePrefix %q must not contain separators", ErrInvalidPath, c.ImagePrefix)
	}

	return nil
}

// ApplyDefaults fills empty fields with their defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Paths.Input == "" {
		c.Paths.Input = d.Paths.Input
	}
	if c.Paths.Output == "" {
		c.Paths.Output = d.Paths.Output
	}
	if c.Paths.AssetDir == "" {
		c.Paths.AssetDir = d.Paths.AssetDir
	}
	if c.Stylesheet == "" {
		c.Stylesheet = d.Stylesheet
	}
	if c.ImagePrefix == "" {
		c.ImagePrefix = d.ImagePrefix
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseConfig decodes YAML strictly: unknown keys are rejected.
// An empty document yields the defaults.
func parseConfig(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-pageslim/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}
