package pageslim

import (
	"log/slog"

	"github.com/alnah/go-pageslim/internal/fileutil"
	"github.com/alnah/go-pageslim/internal/pipeline"
)

// Default locations, used when no path is configured.
const (
	DefaultInput      = "source.html"
	DefaultOutput     = "index.html"
	DefaultAssetDir   = "optimized"
	DefaultStylesheet = pipeline.DefaultStylesheetName
)

// Input contains the document to optimize and where its assets go.
type Input struct {
	HTML      string // complete HTML document (required)
	AssetDir  string // directory receiving images and the stylesheet (required)
	AssetHref string // prefix written into src/href (empty = AssetDir with forward slashes)
}

// Paths locates the files of a file-level run.
type Paths struct {
	Input     string // saved page to read
	Output    string // rewritten page to write
	AssetDir  string // directory receiving extracted assets
	AssetHref string // prefix written into src/href (empty = AssetDir relative to Output)
}

// DefaultPaths returns source.html -> index.html with assets in optimized/.
func DefaultPaths() Paths {
	return Paths{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		AssetDir: DefaultAssetDir,
	}
}

// Asset describes a file written during a run.
type Asset struct {
	Name        string // file name inside the asset directory
	Path        string // on-disk path (AssetDir joined with Name)
	Href        string // reference written into the document
	Format      string // data URI format tag ("png", "svg+xml"), or "css"
	Size        int    // bytes written
	EncodedSize int    // length of the inline text that was replaced
	Width       int    // pixels, 0 for stylesheets and formats without a readable header
	Height      int    // pixels, 0 when Width is
}

// Result holds the outcome of a run.
type Result struct {
	HTML           []byte  // rewritten document
	Images         []Asset // one entry per rewritten img element, in document order
	Stylesheet     *Asset  // nil when the document had no <style> elements
	StylesRemoved  int     // <style> elements removed
	FontsRewritten int     // font url() references pointed back to their source
	InputSize      int     // length of the input document
}

// UniqueImages returns the number of distinct image files written.
func (r *Result) UniqueImages() int {
	seen := make(map[string]struct{}, len(r.Images))
	for _, img := range r.Images {
		seen[img.Name] = struct{}{}
	}
	return len(seen)
}

// BytesSaved returns how much smaller the rewritten document is.
// Negative when the document grew.
func (r *Result) BytesSaved() int {
	return r.InputSize - len(r.HTML)
}

// AssetWriter stores extracted assets.
// Prepare is called once per run, before any WriteAsset call.
type AssetWriter interface {
	Prepare(dir string) error
	WriteAsset(dir, name string, data []byte) error
}

// diskWriter writes assets to the filesystem.
type diskWriter struct{}

func (diskWriter) Prepare(dir string) error {
	return fileutil.NewDirWriter(dir).Prepare()
}

func (diskWriter) WriteAsset(dir, name string, data []byte) error {
	return fileutil.NewDirWriter(dir).WriteAsset(name, data)
}

// discardWriter validates names but writes nothing.
type discardWriter struct{}

func (discardWriter) Prepare(string) error { return nil }

func (discardWriter) WriteAsset(_, name string, _ []byte) error {
	return fileutil.ValidateName(name)
}

// boundWriter adapts an AssetWriter to the pipeline's single-directory interface.
type boundWriter struct {
	w   AssetWriter
	dir string
}

func (b boundWriter) WriteAsset(name string, data []byte) error {
	return b.w.WriteAsset(b.dir, name, data)
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// optimizerConfig holds internal configuration for Optimizer.
type optimizerConfig struct {
	stylesheetName string
	imagePrefix    string
	dryRun         bool
}

// WithLogger sets the logger receiving debug records for each stage and asset.
// Panics if logger is nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("pageslim: WithLogger logger must not be nil")
	}
	return func(o *Optimizer) {
		o.logger = logger
	}
}

// WithStylesheetName sets the file name of the extracted stylesheet.
// Panics if name is empty or contains a path separator (programmer error).
func WithStylesheetName(name string) Option {
	if err := fileutil.ValidateName(name); err != nil {
		panic("pageslim: WithStylesheetName: " + err.Error())
	}
	return func(o *Optimizer) {
		o.cfg.stylesheetName = name
	}
}

// WithImagePrefix sets the prefix of extracted image file names.
// Panics if prefix contains a path separator (programmer error).
func WithImagePrefix(prefix string) Option {
	if fileutil.IsFilePath(prefix) {
		panic("pageslim: WithImagePrefix prefix must not contain a path separator")
	}
	return func(o *Optimizer) {
		o.cfg.imagePrefix = prefix
	}
}

// WithAssetWriter replaces the filesystem writer.
// Panics if w is nil.
func WithAssetWriter(w AssetWriter) Option {
	if w == nil {
		panic("pageslim: WithAssetWriter writer must not be nil")
	}
	return func(o *Optimizer) {
		o.writer = w
	}
}

// WithDryRun computes the result without writing assets or the output file.
func WithDryRun() Option {
	return func(o *Optimizer) {
		o.writer = discardWriter{}
		o.cfg.dryRun = true
	}
}
