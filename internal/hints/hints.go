// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForInputNotFound returns hints for a missing input page.
// When the default input was used, it explains how to point elsewhere.
func ForInputNotFound(path string, usedDefault bool) string {
	if !usedDefault {
		return format("check the path: " + path)
	}
	return format("pass the saved page as an argument, set PAGESLIM_INPUT, or set paths.input in a config file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pageslim/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-pageslim") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMalformedData returns hints for data URIs that cannot be decoded.
func ForMalformedData() string {
	return format("the page has a truncated or non-base64 data URI; re-save it or fix the img element named in the error")
}

// ForAssetDirectory returns hints for asset directory creation and write errors.
func ForAssetDirectory(dir string) string {
	var hints []string

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		hints = append(hints, dir+" exists and is not a directory")
	}
	hints = append(hints, "check the parent directory exists and is writable", "or choose another location with --asset-dir")

	return formatHints(hints)
}

// ForOutputFile returns hints for output file write errors.
func ForOutputFile() string {
	return format("check the output directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
