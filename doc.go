// Package pageslim extracts the embedded assets of a saved HTML page into
// external files.
//
// Page-saving tools produce one self-contained document: images become
// base64 data URIs and fonts are inlined into <style> blocks. pageslim
// undoes that so the page is smaller and its resources are cacheable.
//
// # Quick Start
//
// Rewrite source.html into index.html with assets under optimized/:
//
//	res, err := pageslim.OptimizeFile(ctx, pageslim.DefaultPaths())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(res.Images), "images extracted")
//
// Or work on in-memory HTML and choose where assets go:
//
//	opt := pageslim.NewOptimizer()
//	res, err := opt.Optimize(ctx, pageslim.Input{
//	    HTML:     page,
//	    AssetDir: "static",
//	})
//
// # Pass
//
// A single linear pass over the document:
//
//  1. Parse with golang.org/x/net/html
//  2. Write every img[src] data:image/ URI to <dir>/image_<hash8>.<ext>
//     and point src at it (hash8 = first 8 hex chars of the MD5 of the
//     base64 text, so identical images share one file)
//  3. Remove every <style> element, concatenating their text
//  4. Replace url(data:font/woff2;base64,...<comment>) with the original
//     font URL recorded in the /*savepage-url=...*/ comment
//  5. Write the CSS to <dir>/styles.css and link it from <head>
//  6. Render the document
//
// The first malformed data URI aborts the pass. Files written before the
// failure are left in place.
//
// # Options
//
//	opt := pageslim.NewOptimizer(
//	    pageslim.WithLogger(slog.Default()),
//	    pageslim.WithStylesheetName("page.css"),
//	    pageslim.WithDryRun(),
//	)
package pageslim
