package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	pageslim "github.com/alnah/go-pageslim"
	"github.com/alnah/go-pageslim/internal/config"
	"github.com/alnah/go-pageslim/internal/hints"
)

// ErrUsage reports invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// hintedError carries an actionable hint printed after the message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches hint to err. An empty hint returns err unchanged.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor returns the hint attached to err, if any.
func hintFor(err error) string {
	var he *hintedError
	if errors.As(err, &he) {
		return he.hint
	}
	return ""
}

// runOptimize resolves the configuration and optimizes one page.
func runOptimize(ctx context.Context, positional []string, f *optimizeFlags, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one input file, got %d", ErrUsage, len(positional))
	}

	warnUnknownEnvVars(env.Environ(), env.Stderr)

	cfg, err := resolveConfig(positional, f, loadEnvConfig(env.Getenv))
	if err != nil {
		return withHint(err, configHint(err))
	}
	usedDefault := len(positional) == 0 && cfg.Paths.Input == config.DefaultInput

	paths := pageslim.Paths{
		Input:     cfg.Paths.Input,
		Output:    cfg.Paths.Output,
		AssetDir:  cfg.Paths.AssetDir,
		AssetHref: cfg.Paths.AssetHref,
	}

	opts := []pageslim.Option{
		pageslim.WithLogger(newLogger(env.Stderr, f.common.verbose)),
		pageslim.WithStylesheetName(cfg.Stylesheet),
		pageslim.WithImagePrefix(cfg.ImagePrefix),
	}
	if f.dryRun {
		opts = append(opts, pageslim.WithDryRun())
	}

	res, err := pageslim.OptimizeFile(ctx, paths, opts...)
	if err != nil {
		return withHint(err, runHint(err, paths, usedDefault))
	}

	if !f.common.quiet {
		printStatus(env.Stdout, paths, cfg.Stylesheet, f.dryRun)
	}
	if f.common.verbose {
		printSummary(env.Stderr, res)
	}
	return nil
}

// resolveConfig builds the run configuration.
// Precedence: positional input and flags > env vars > config file > defaults.
func resolveConfig(positional []string, f *optimizeFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	configName := f.common.config
	if configName == "" {
		configName = env.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(f, cfg)
	if len(positional) == 1 {
		cfg.Paths.Input = positional[0]
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a debug text logger on w when verbose, otherwise a discarding one.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// printStatus prints where the page and its assets were written.
func printStatus(w io.Writer, paths pageslim.Paths, stylesheet string, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "(dry run) "
	}
	fmt.Fprintf(w, "%sOptimized HTML saved to: %s\n", prefix, paths.Output)
	fmt.Fprintf(w, "%sImages saved to: %s\n", prefix, paths.AssetDir)
	fmt.Fprintf(w, "%sCSS extracted to: %s\n", prefix, filepath.Join(paths.AssetDir, stylesheet))
}

// printSummary prints asset counts and the size difference.
func printSummary(w io.Writer, res *pageslim.Result) {
	fmt.Fprintf(w, "images: %d extracted, %d files\n", len(res.Images), res.UniqueImages())
	fmt.Fprintf(w, "styles: %d blocks removed, %d fonts rewritten\n", res.StylesRemoved, res.FontsRewritten)
	fmt.Fprintf(w, "size: %d -> %d bytes (%d saved)\n", res.InputSize, len(res.HTML), res.BytesSaved())
}

// configHint returns a hint for configuration errors.
func configHint(err error) string {
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return hints.ForConfigNotFound(nf.Tried)
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(nil)
	}
	return ""
}

// runHint returns a hint for optimization errors.
func runHint(err error, paths pageslim.Paths, usedDefault bool) string {
	switch {
	case errors.Is(err, pageslim.ErrReadInput):
		return hints.ForInputNotFound(paths.Input, usedDefault)
	case errors.Is(err, pageslim.ErrMalformedDataURI), errors.Is(err, pageslim.ErrDecodePayload):
		return hints.ForMalformedData()
	case errors.Is(err, pageslim.ErrCreateAssetDir), errors.Is(err, pageslim.ErrWriteAsset):
		return hints.ForAssetDirectory(paths.AssetDir)
	case errors.Is(err, pageslim.ErrWriteOutput):
		return hints.ForOutputFile()
	}
	return ""
}
