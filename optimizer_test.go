package pageslim_test

// Notes:
// - Optimize is exercised against both a recording AssetWriter (no disk)
//   and the default filesystem writer rooted in t.TempDir().
// - The internal-panic recovery branch is not triggered: no stage panics
//   on parseable input.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pageslim"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Recording asset writer
// ---------------------------------------------------------------------------

type recordingWriter struct {
	prepared []string
	files    map[string][]byte
	writes   int
	err      error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{files: make(map[string][]byte)}
}

func (r *recordingWriter) Prepare(dir string) error {
	r.prepared = append(r.prepared, dir)
	return nil
}

func (r *recordingWriter) WriteAsset(dir, name string, data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.files[filepath.Join(dir, name)] = append([]byte(nil), data...)
	r.writes++
	return nil
}

const pngPayload = "iVBORw0KGgo="

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ---------------------------------------------------------------------------
// TestOptimize - End-to-end behavior on in-memory documents
// ---------------------------------------------------------------------------

func TestOptimize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		wantHTML  string
		wantFiles []string
	}{
		{
			name:      "single png image",
			html:      `<html><head></head><body><img src="data:image/png;base64,` + pngPayload + `"></body></html>`,
			wantHTML:  `<html><head></head><body><img src="optimized/image_03690ab2.png"/></body></html>`,
			wantFiles: []string{"optimized/image_03690ab2.png"},
		},
		{
			name:      "style moved to linked stylesheet",
			html:      `<html><head><style>a{}</style></head><body></body></html>`,
			wantHTML:  `<html><head><link rel="stylesheet" href="optimized/styles.css"/></head><body></body></html>`,
			wantFiles: []string{"optimized/styles.css"},
		},
		{
			name:     "no assets leaves document alone",
			html:     `<html><head><title>t</title></head><body><p>hi</p></body></html>`,
			wantHTML: `<html><head><title>t</title></head><body><p>hi</p></body></html>`,
		},
		{
			name: "images, styles and fonts together",
			html: `<html><head><style>@font-face{src:url(data:font/woff2;base64,AAAA/*savepage-url=https://example.com/f.woff2*/)}</style></head>` +
				`<body><img src="data:image/svg+xml;base64,PHN2Zy8+"><style>p{}</style></body></html>`,
			wantHTML: `<html><head><link rel="stylesheet" href="optimized/styles.css"/></head>` +
				`<body><img src="optimized/image_75ebeaea.svg"/></body></html>`,
			wantFiles: []string{"optimized/image_75ebeaea.svg", "optimized/styles.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := newRecordingWriter()
			opt := pageslim.NewOptimizer(pageslim.WithAssetWriter(w))

			res, err := opt.Optimize(context.Background(), pageslim.Input{
				HTML:     tt.html,
				AssetDir: "optimized",
			})
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}

			if got := string(res.HTML); got != tt.wantHTML {
				t.Errorf("HTML = %q\nwant   %q", got, tt.wantHTML)
			}
			if len(w.files) != len(tt.wantFiles) {
				t.Errorf("files written = %d, want %d", len(w.files), len(tt.wantFiles))
			}
			for _, f := range tt.wantFiles {
				if _, ok := w.files[filepath.FromSlash(f)]; !ok {
					t.Errorf("file %q not written", f)
				}
			}
			if len(w.prepared) != 1 || w.prepared[0] != "optimized" {
				t.Errorf("Prepare calls = %v, want [optimized]", w.prepared)
			}
		})
	}
}

func TestOptimize_ResultSummary(t *testing.T) {
	t.Parallel()

	html := `<html><head><style>@font-face{src:url(data:font/woff2;base64,AAAA/*savepage-url=https://example.com/f.woff2*/)}</style><style></style></head>` +
		`<body><img src="data:image/png;base64,` + pngPayload + `"><img src="data:image/png;base64,` + pngPayload + `"></body></html>`

	w := newRecordingWriter()
	res, err := pageslim.NewOptimizer(pageslim.WithAssetWriter(w)).Optimize(context.Background(), pageslim.Input{
		HTML:     html,
		AssetDir: "out",
	})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if len(res.Images) != 2 {
		t.Errorf("Images = %d, want 2", len(res.Images))
	}
	if res.UniqueImages() != 1 {
		t.Errorf("UniqueImages() = %d, want 1", res.UniqueImages())
	}
	if res.StylesRemoved != 2 {
		t.Errorf("StylesRemoved = %d, want 2", res.StylesRemoved)
	}
	if res.FontsRewritten != 1 {
		t.Errorf("FontsRewritten = %d, want 1", res.FontsRewritten)
	}
	if res.InputSize != len(html) {
		t.Errorf("InputSize = %d, want %d", res.InputSize, len(html))
	}
	if res.BytesSaved() <= 0 {
		t.Errorf("BytesSaved() = %d, want > 0", res.BytesSaved())
	}

	img := res.Images[0]
	if img.Path != filepath.Join("out", "image_03690ab2.png") {
		t.Errorf("Images[0].Path = %q", img.Path)
	}
	if img.Href != "out/image_03690ab2.png" {
		t.Errorf("Images[0].Href = %q", img.Href)
	}

	if res.Stylesheet == nil {
		t.Fatal("Stylesheet = nil, want asset")
	}
	if res.Stylesheet.Path != filepath.Join("out", "styles.css") {
		t.Errorf("Stylesheet.Path = %q", res.Stylesheet.Path)
	}
	css := string(w.files[filepath.Join("out", "styles.css")])
	wantCSS := "@font-face{src:url(https://example.com/f.woff2)}\n\n"
	if css != wantCSS {
		t.Errorf("styles.css = %q, want %q", css, wantCSS)
	}
	if strings.Contains(css, "AAAA") {
		t.Error("font payload should be discarded")
	}
}

func TestOptimize_CustomNamesAndHref(t *testing.T) {
	t.Parallel()

	w := newRecordingWriter()
	opt := pageslim.NewOptimizer(
		pageslim.WithAssetWriter(w),
		pageslim.WithStylesheetName("page.css"),
		pageslim.WithImagePrefix("img-"),
	)

	res, err := opt.Optimize(context.Background(), pageslim.Input{
		HTML:      `<html><head><style>a{}</style></head><body><img src="data:image/png;base64,` + pngPayload + `"></body></html>`,
		AssetDir:  filepath.Join("site", "static"),
		AssetHref: "/static",
	})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	out := string(res.HTML)
	for _, want := range []string{`src="/static/img-03690ab2.png"`, `href="/static/page.css"`} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML = %q, want to contain %q", out, want)
		}
	}
	if _, ok := w.files[filepath.Join("site", "static", "page.css")]; !ok {
		t.Error("page.css not written under the asset dir")
	}
}

// ---------------------------------------------------------------------------
// TestOptimize_Errors - Validation and fatal conditions
// ---------------------------------------------------------------------------

func TestOptimize_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		input    pageslim.Input
		writeErr error
		wantErr  error
	}{
		{
			name:    "empty asset dir",
			input:   pageslim.Input{HTML: "<p>x</p>"},
			wantErr: pageslim.ErrEmptyAssetDir,
		},
		{
			name:    "data URI without comma",
			input:   pageslim.Input{HTML: `<img src="data:image/png;base64">`, AssetDir: "optimized"},
			wantErr: pageslim.ErrMalformedDataURI,
		},
		{
			name:    "invalid base64",
			input:   pageslim.Input{HTML: `<img src="data:image/png;base64,%%%">`, AssetDir: "optimized"},
			wantErr: pageslim.ErrDecodePayload,
		},
		{
			name:     "writer failure",
			input:    pageslim.Input{HTML: `<style>a{}</style>`, AssetDir: "optimized"},
			writeErr: errBoom,
			wantErr:  errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := newRecordingWriter()
			w.err = tt.writeErr

			_, err := pageslim.NewOptimizer(pageslim.WithAssetWriter(w)).Optimize(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Optimize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptimize_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := newRecordingWriter()
	_, err := pageslim.NewOptimizer(pageslim.WithAssetWriter(w)).Optimize(ctx, pageslim.Input{
		HTML:     `<img src="data:image/png;base64,` + pngPayload + `">`,
		AssetDir: "optimized",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Optimize() error = %v, want %v", err, context.Canceled)
	}
	if w.writes != 0 {
		t.Errorf("writes = %d, want 0 after cancellation", w.writes)
	}
}

// ---------------------------------------------------------------------------
// TestOptimize_Disk - Default filesystem writer
// ---------------------------------------------------------------------------

func TestOptimize_Disk(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "optimized")
	html := `<html><head><style>a{}</style></head><body><img src="data:image/png;base64,` + pngPayload + `"></body></html>`

	for run := 0; run < 2; run++ {
		res, err := pageslim.NewOptimizer().Optimize(context.Background(), pageslim.Input{
			HTML:     html,
			AssetDir: dir,
		})
		if err != nil {
			t.Fatalf("run %d: Optimize() error = %v", run, err)
		}
		if res.Images[0].Name != "image_03690ab2.png" {
			t.Errorf("run %d: image name = %q", run, res.Images[0].Name)
		}
	}

	got, err := os.ReadFile(filepath.Join(dir, "image_03690ab2.png"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got, pngBytes) {
		t.Errorf("image bytes = %x, want %x", got, pngBytes)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("asset dir has %d entries after two runs, want 2", len(entries))
	}
}

func TestOptimize_NoAssetsWritesNothing(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "optimized")
	_, err := pageslim.NewOptimizer().Optimize(context.Background(), pageslim.Input{
		HTML:     `<html><head></head><body><img src="a.png"></body></html>`,
		AssetDir: dir,
	})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("asset dir should exist: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("asset dir has %d entries, want 0", len(entries))
	}
}

func TestOptimize_EmptyDocument(t *testing.T) {
	t.Parallel()

	w := newRecordingWriter()
	res, err := pageslim.NewOptimizer(pageslim.WithAssetWriter(w)).Optimize(context.Background(), pageslim.Input{
		HTML:     "",
		AssetDir: "optimized",
	})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if got, want := string(res.HTML), "<html><head></head><body></body></html>"; got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
	if len(w.prepared) != 1 || w.prepared[0] != "optimized" {
		t.Errorf("prepared = %v, want [optimized]", w.prepared)
	}
	if w.writes != 0 {
		t.Errorf("writes = %d, want 0", w.writes)
	}
	if len(res.Images) != 0 || res.Stylesheet != nil {
		t.Errorf("result has assets: images=%d stylesheet=%v", len(res.Images), res.Stylesheet)
	}
}

// ---------------------------------------------------------------------------
// TestOptions - Programmer-error panics
// ---------------------------------------------------------------------------

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil logger", func() { pageslim.WithLogger(nil) }},
		{"empty stylesheet name", func() { pageslim.WithStylesheetName("") }},
		{"stylesheet name with separator", func() { pageslim.WithStylesheetName("css/a.css") }},
		{"image prefix with separator", func() { pageslim.WithImagePrefix("a/b") }},
		{"nil asset writer", func() { pageslim.WithAssetWriter(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic, got none")
				}
			}()
			tt.fn()
		})
	}
}
