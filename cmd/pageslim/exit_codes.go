package main

import (
	"errors"
	"os"

	pageslim "github.com/alnah/go-pageslim"
	"github.com/alnah/go-pageslim/internal/config"
)

// Exit codes for the pageslim CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page optimized
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitData    = 4 // Malformed page or embedded data
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Malformed data (exit 4)
	if errors.Is(err, pageslim.ErrMalformedDataURI) ||
		errors.Is(err, pageslim.ErrDecodePayload) ||
		errors.Is(err, pageslim.ErrParse) ||
		errors.Is(err, pageslim.ErrNoHead) {
		return ExitData
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPath) ||
		errors.Is(err, pageslim.ErrEmptyAssetDir) ||
		errors.Is(err, pageslim.ErrInvalidName) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pageslim.ErrReadInput) ||
		errors.Is(err, pageslim.ErrWriteOutput) ||
		errors.Is(err, pageslim.ErrCreateAssetDir) ||
		errors.Is(err, pageslim.ErrWriteAsset) {
		return ExitIO
	}

	return ExitGeneral
}
