package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pageslim [input] [flags]")
	fmt.Fprintln(w, "       pageslim version | help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Move the images and styles embedded in a saved web page into files,")
	fmt.Fprintln(w, "leaving a slim HTML page that references them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Saved HTML page (default: source.html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Optimized HTML file (default: index.html)")
	fmt.Fprintln(w, "  -d, --asset-dir <dir>     Asset directory (default: optimized)")
	fmt.Fprintln(w, "      --asset-href <s>      Prefix written into src/href (default: asset dir")
	fmt.Fprintln(w, "                            relative to the output file)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --stylesheet <name>   Stylesheet file name (default: styles.css)")
	fmt.Fprintln(w, "      --image-prefix <s>    Image file name prefix (default: image_)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --dry-run             Report without writing files")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug log and size summary")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PAGESLIM_CONFIG, PAGESLIM_INPUT, PAGESLIM_OUTPUT,")
	fmt.Fprintln(w, "  PAGESLIM_ASSET_DIR, PAGESLIM_ASSET_HREF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}
