package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alnah/go-pageslim/internal/config"
)

// envPrefix marks variables read by pageslim.
const envPrefix = "PAGESLIM_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PAGESLIM_CONFIG: config file name or path
	Input      string // PAGESLIM_INPUT: saved page to read
	Output     string // PAGESLIM_OUTPUT: optimized page to write
	AssetDir   string // PAGESLIM_ASSET_DIR: asset directory
	AssetHref  string // PAGESLIM_ASSET_HREF: prefix written into src/href
}

// knownEnvVars lists valid PAGESLIM_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAGESLIM_CONFIG":     true,
	"PAGESLIM_INPUT":      true,
	"PAGESLIM_OUTPUT":     true,
	"PAGESLIM_ASSET_DIR":  true,
	"PAGESLIM_ASSET_HREF": true,
}

// loadEnvConfig reads configuration through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("PAGESLIM_CONFIG"),
		Input:      getenv("PAGESLIM_INPUT"),
		Output:     getenv("PAGESLIM_OUTPUT"),
		AssetDir:   getenv("PAGESLIM_ASSET_DIR"),
		AssetHref:  getenv("PAGESLIM_ASSET_HREF"),
	}
}

// warnUnknownEnvVars writes a warning for each unrecognized PAGESLIM_* variable.
// Catches typos like PAGESLIM_ASSETDIR.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides cfg with every env var that is set.
// Called after the config file is loaded and before flags are merged,
// giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Paths.Input = env.Input
	}
	if env.Output != "" {
		cfg.Paths.Output = env.Output
	}
	if env.AssetDir != "" {
		cfg.Paths.AssetDir = env.AssetDir
	}
	if env.AssetHref != "" {
		cfg.Paths.AssetHref = env.AssetHref
	}
}
