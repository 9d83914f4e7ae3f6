package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pageslim/internal/config"
)

// commonFlags holds flags shared by every run.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pathFlags holds input/output location flags.
type pathFlags struct {
	output    string
	assetDir  string
	assetHref string
}

// assetFlags holds asset naming flags.
type assetFlags struct {
	stylesheet  string
	imagePrefix string
}

// optimizeFlags holds all flags of an optimize run.
type optimizeFlags struct {
	common commonFlags
	paths  pathFlags
	assets assetFlags
	dryRun bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug log and size summary")
}

// addPathFlags adds location flags to a FlagSet.
func addPathFlags(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "optimized HTML file")
	fs.StringVarP(&f.assetDir, "asset-dir", "d", "", "directory for extracted images and stylesheet")
	fs.StringVar(&f.assetHref, "asset-href", "", "prefix written into src/href attributes")
}

// addAssetFlags adds asset naming flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet file name")
	fs.StringVar(&f.imagePrefix, "image-prefix", "", "prefix of extracted image names")
}

// parseFlags parses arguments (without the program name).
// Returns the flags and the remaining positional arguments.
func parseFlags(args []string, stderr io.Writer) (*optimizeFlags, []string, error) {
	fs := flag.NewFlagSet("pageslim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(stderr) }

	f := &optimizeFlags{}
	addCommonFlags(fs, &f.common)
	addPathFlags(fs, &f.paths)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.dryRun, "dry-run", false, "report what would be written without writing")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	return f, fs.Args(), nil
}

// mergeFlags applies explicitly set flags over cfg.
// Empty flags leave the config value in place.
func mergeFlags(f *optimizeFlags, cfg *config.Config) {
	if f.paths.output != "" {
		cfg.Paths.Output = f.paths.output
	}
	if f.paths.assetDir != "" {
		cfg.Paths.AssetDir = f.paths.assetDir
	}
	if f.paths.assetHref != "" {
		cfg.Paths.AssetHref = f.paths.assetHref
	}
	if f.assets.stylesheet != "" {
		cfg.Stylesheet = f.assets.stylesheet
	}
	if f.assets.imagePrefix != "" {
		cfg.ImagePrefix = f.assets.imagePrefix
	}
}
