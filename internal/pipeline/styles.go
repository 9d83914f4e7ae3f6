package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// CollectStyles removes every <style> element and returns their text,
// in document order, each followed by a newline.
// An empty <style></style> still contributes its newline.
func CollectStyles(doc *html.Node) (css string, removed int) {
	var buf strings.Builder
	for _, style := range collectElements(doc, "style") {
		buf.WriteString(textContent(style))
		buf.WriteString("\n")
		if style.Parent != nil {
			style.Parent.RemoveChild(style)
		}
		removed++
	}
	return buf.String(), removed
}
