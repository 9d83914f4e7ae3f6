// Package pipeline implements the stages that slim a saved HTML page.
//
// Each stage works on a parsed *html.Node tree or on collected CSS text:
//   - Document parsing and rendering via golang.org/x/net/html
//   - Data URI decoding and content-addressed file naming
//   - Image extraction from img[src] data URIs, with header-probed dimensions
//   - Inline <style> collection and removal
//   - Font url() rewriting back to the original source URL
//   - Stylesheet <link> insertion into <head>
//
// File writes go through the AssetWriter interface so the stages never
// touch the filesystem directly. Orchestration, cancellation, and logging
// live in the root pageslim package.
package pipeline
