package pipeline

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultStylesheetName is the file name of the extracted stylesheet.
const DefaultStylesheetName = "styles.css"

// EmitStylesheet writes css to w under name and links it from <head>.
// Empty css writes nothing and returns a nil asset.
// The file is written before the link is inserted, so a document without
// a head still leaves the stylesheet behind.
func EmitStylesheet(doc *html.Node, css string, w AssetWriter, name, href string) (*Asset, error) {
	if css == "" {
		return nil, nil
	}

	if err := w.WriteAsset(name, []byte(css)); err != nil {
		return nil, fmt.Errorf("writing stylesheet %s: %w", name, err)
	}

	asset := &Asset{
		Name:        name,
		Href:        JoinHref(href, name),
		Format:      "css",
		Size:        len(css),
		EncodedSize: len(css),
	}

	if err := InsertStylesheetLink(doc, asset.Href); err != nil {
		return nil, err
	}

	return asset, nil
}

// InsertStylesheetLink appends <link rel="stylesheet" href="..."> as the
// last child of the first <head> element.
func InsertStylesheetLink(doc *html.Node, href string) error {
	head := findElement(doc, atom.Head)
	if head == nil {
		return ErrNoHead
	}

	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Link,
		Data:     "link",
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "href", Val: href},
		},
	})
	return nil
}
