package pipeline

import (
	"regexp"
	"strings"
)

// Comment markers the page-saving tool wraps around a font's source URL.
const (
	savepageURLPrefix = "/*savepage-url="
	savepageURLSuffix = "*/"
)

// fontURLPattern matches url(data:font/woff2;base64,...) immediately followed
// by a /*savepage-url=...*/ comment and the closing paren.
// Both groups are non-greedy; anything else is left alone.
var fontURLPattern = regexp.MustCompile(`url\((data:font/woff2;base64,.*?)(/\*savepage-url=.*?\*/)\)`)

// RewriteFontURLs replaces embedded WOFF2 fonts with their original URL and
// returns the rewritten CSS and the number of replacements.
// The embedded payload is dropped, not written to disk.
func RewriteFontURLs(css string) (string, int) {
	count := 0
	out := fontURLPattern.ReplaceAllStringFunc(css, func(match string) string {
		groups := fontURLPattern.FindStringSubmatch(match)
		if len(groups) != 3 {
			return match
		}
		count++
		return "url(" + sourceURLFromComment(groups[2]) + ")"
	})
	return out, count
}

// sourceURLFromComment trims the comment markers from /*savepage-url=URL*/.
// The URL itself is not validated.
func sourceURLFromComment(comment string) string {
	url := strings.TrimPrefix(comment, savepageURLPrefix)
	return strings.TrimSuffix(url, savepageURLSuffix)
}
