package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// imageDataPrefix selects the img[src] values that get extracted.
const imageDataPrefix = "data:image/"

// DefaultImagePrefix is the file name prefix for extracted images.
const DefaultImagePrefix = "image_"

// AssetWriter persists extracted asset bytes under a file name.
type AssetWriter interface {
	WriteAsset(name string, data []byte) error
}

// Asset describes a file written during the pass.
type Asset struct {
	Name        string // file name inside the asset directory
	Href        string // value written into the document
	Format      string // data URI format tag, or "css" for the stylesheet
	Size        int    // bytes written
	EncodedSize int    // length of the inline text that was replaced
	Width       int    // pixels, 0 when unknown (svg, css, truncated data)
	Height      int    // pixels, 0 when unknown
}

// ImageOptions controls image naming and references.
type ImageOptions struct {
	Prefix string // file name prefix (empty = DefaultImagePrefix)
	Href   string // base used in rewritten src attributes
}

// ExtractImages writes every img[src] data URI to w and points src at the file.
// Images are processed in document order; the first failure aborts the pass
// and leaves earlier files in place. The error names the img element by its
// position among all img elements and quotes the start of its src.
// Identical payloads map to the same name, so a repeated image rewrites the
// same file.
func ExtractImages(doc *html.Node, w AssetWriter, opts ImageOptions) ([]Asset, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultImagePrefix
	}

	var assets []Asset
	for i, img := range collectElements(doc, "img") {
		src, ok := getAttr(img, "src")
		if !ok || !strings.HasPrefix(src, imageDataPrefix) {
			continue
		}

		asset, err := extractImage(src, w, prefix, opts.Href)
		if err != nil {
			return assets, fmt.Errorf("img #%d (src=%q): %w", i+1, srcPreview(src), err)
		}

		setAttr(img, "src", asset.Href)
		assets = append(assets, asset)
	}

	return assets, nil
}

// extractImage decodes one data URI, writes it, and returns its metadata.
func extractImage(src string, w AssetWriter, prefix, href string) (Asset, error) {
	uri, err := ParseDataURI(src)
	if err != nil {
		return Asset{}, err
	}

	data, err := uri.Decode()
	if err != nil {
		return Asset{}, err
	}

	name := ContentName(prefix, uri.Payload, ExtensionFor(uri.Format))
	if err := w.WriteAsset(name, data); err != nil {
		return Asset{}, fmt.Errorf("writing image %s: %w", name, err)
	}

	width, height := probeDimensions(data)
	return Asset{
		Name:        name,
		Href:        JoinHref(href, name),
		Format:      uri.Format,
		Size:        len(data),
		EncodedSize: len(src),
		Width:       width,
		Height:      height,
	}, nil
}

// srcPreviewLen bounds how much of a data URI an error message quotes.
const srcPreviewLen = 48

// srcPreview returns the start of src, marked when truncated.
func srcPreview(src string) string {
	if len(src) <= srcPreviewLen {
		return src
	}
	return src[:srcPreviewLen] + "..."
}
