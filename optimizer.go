package pageslim

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-pageslim/internal/fileutil"
	"github.com/alnah/go-pageslim/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ AssetWriter          = diskWriter{}
	_ AssetWriter          = discardWriter{}
	_ pipeline.AssetWriter = boundWriter{}
)

// Optimizer runs the extraction pass.
// An Optimizer holds no per-document state; reuse it across documents.
type Optimizer struct {
	cfg    optimizerConfig
	writer AssetWriter
	logger *slog.Logger
}

// NewOptimizer creates an Optimizer with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithStylesheetName, WithDryRun).
func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{
		cfg: optimizerConfig{
			stylesheetName: DefaultStylesheet,
			imagePrefix:    pipeline.DefaultImagePrefix,
		},
		writer: diskWriter{},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Optimize extracts the assets of input.HTML into input.AssetDir and returns
// the rewritten document. The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (o *Optimizer) Optimize(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	href := input.AssetHref
	if href == "" {
		href = filepath.ToSlash(input.AssetDir)
	}

	if err := o.writer.Prepare(input.AssetDir); err != nil {
		return nil, err
	}

	doc, err := pipeline.ParseDocument(input.HTML)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	w := boundWriter{w: o.writer, dir: input.AssetDir}

	images, err := pipeline.ExtractImages(doc, w, pipeline.ImageOptions{
		Prefix: o.cfg.imagePrefix,
		Href:   href,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting images: %w", err)
	}
	for _, img := range images {
		o.logger.Debug("extracted image",
			slog.String("name", img.Name),
			slog.String("format", img.Format),
			slog.Int("bytes", img.Size),
			slog.Int("width", img.Width),
			slog.Int("height", img.Height))
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	css, removed := pipeline.CollectStyles(doc)
	css, fonts := pipeline.RewriteFontURLs(css)
	o.logger.Debug("collected styles",
		slog.Int("blocks", removed),
		slog.Int("fonts_rewritten", fonts),
		slog.Int("bytes", len(css)))

	sheet, err := pipeline.EmitStylesheet(doc, css, w, o.cfg.stylesheetName, href)
	if err != nil {
		return nil, fmt.Errorf("emitting stylesheet: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	out, err := pipeline.RenderDocument(doc)
	if err != nil {
		return nil, err
	}

	res := &Result{
		HTML:           []byte(out),
		Images:         toAssets(input.AssetDir, images),
		StylesRemoved:  removed,
		FontsRewritten: fonts,
		InputSize:      len(input.HTML),
	}
	if sheet != nil {
		a := toAsset(input.AssetDir, *sheet)
		res.Stylesheet = &a
	}

	o.logger.Debug("optimized document",
		slog.Int("images", len(res.Images)),
		slog.Int("input_bytes", res.InputSize),
		slog.Int("output_bytes", len(res.HTML)))

	return res, nil
}

// OptimizeFile reads paths.Input, optimizes it, and writes paths.Output.
// When paths.AssetHref is empty, references are computed relative to the
// output file so the page resolves its assets wherever it is written.
// In dry-run mode nothing is written. Writes are not atomic.
func (o *Optimizer) OptimizeFile(ctx context.Context, paths Paths) (*Result, error) {
	content, err := os.ReadFile(paths.Input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	href := paths.AssetHref
	if href == "" {
		href = fileutil.RelativeHref(paths.Output, paths.AssetDir)
	}

	o.logger.Debug("read input",
		slog.String("path", paths.Input),
		slog.Int("bytes", len(content)))

	res, err := o.Optimize(ctx, Input{
		HTML:      string(content),
		AssetDir:  paths.AssetDir,
		AssetHref: href,
	})
	if err != nil {
		return nil, err
	}

	if o.cfg.dryRun {
		return res, nil
	}

	if err := os.WriteFile(paths.Output, res.HTML, fileutil.FilePermissions); err != nil { // #nosec G306 -- output page is public
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return res, nil
}

// OptimizeFile runs a file-level pass with a fresh Optimizer.
func OptimizeFile(ctx context.Context, paths Paths, opts ...Option) (*Result, error) {
	return NewOptimizer(opts...).OptimizeFile(ctx, paths)
}

// validateInput checks required fields.
// An empty document is valid and parses to an empty html/head/body skeleton.
func validateInput(input Input) error {
	if input.AssetDir == "" {
		return ErrEmptyAssetDir
	}
	return nil
}

// toAsset converts a pipeline asset to the public type.
func toAsset(dir string, a pipeline.Asset) Asset {
	return Asset{
		Name:        a.Name,
		Path:        fileutil.NewDirWriter(dir).Path(a.Name),
		Href:        a.Href,
		Format:      a.Format,
		Size:        a.Size,
		EncodedSize: a.EncodedSize,
		Width:       a.Width,
		Height:      a.Height,
	}
}

func toAssets(dir string, in []pipeline.Asset) []Asset {
	if len(in) == 0 {
		return nil
	}
	out := make([]Asset, len(in))
	for i, a := range in {
		out[i] = toAsset(dir, a)
	}
	return out
}
