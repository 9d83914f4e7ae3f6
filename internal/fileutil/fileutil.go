// Package fileutil provides file and directory helpers for asset output.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNameEmpty         = errors.New("file name cannot be empty")
	ErrNamePathTraversal = errors.New("file name contains path separator or null byte")
	ErrCreateDir         = errors.New("failed to create directory")
	ErrWriteAsset        = errors.New("failed to write asset file")
)

// File permission constants.
const (
	DirPermissions  = 0o755 // rwxr-xr-x: assets are meant to be served
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// DirWriter writes asset files into a single directory.
// Existing files with the same name are overwritten; other files are left alone.
type DirWriter struct {
	Dir string
}

// NewDirWriter returns a DirWriter rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{Dir: dir}
}

// Prepare creates the directory and its parents. Existing directories are fine.
func (w *DirWriter) Prepare() error {
	if err := os.MkdirAll(w.Dir, DirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCreateDir, w.Dir, err)
	}
	return nil
}

// WriteAsset writes data to Dir/name, replacing any existing file.
func (w *DirWriter) WriteAsset(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, FilePermissions); err != nil { // #nosec G306 -- assets are public
		return fmt.Errorf("%w: %s: %v", ErrWriteAsset, path, err)
	}
	return nil
}

// Path returns the on-disk path of an asset name.
func (w *DirWriter) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// ValidateName checks that name is a bare file name safe to join to a directory.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrNamePathTraversal, name)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "pageslim" -> false (name)
//   - "./pageslim.yaml" -> true (relative path)
//   - "/etc/pageslim.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// RelativeHref returns dir expressed relative to the directory containing
// outputFile, with forward slashes. When outputFile sits in the working
// directory, dir is returned as given so the default layout keeps its
// exact references. When no relative form exists (different volumes),
// dir is also returned as given.
func RelativeHref(outputFile, dir string) string {
	base := filepath.Dir(outputFile)
	if base == "." {
		return filepath.ToSlash(dir)
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}

	rel, err := filepath.Rel(absBase, absDir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(rel)
}
