package pipeline

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// memWriter records assets in memory, in write order.
type memWriter struct {
	files map[string][]byte
	order []string
	err   error // returned from every write when set
}

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string][]byte)}
}

func (m *memWriter) WriteAsset(name string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.files[name] = append([]byte(nil), data...)
	m.order = append(m.order, name)
	return nil
}

var errDiskFull = errors.New("disk full")

// mustParse parses content or fails the test.
func mustParse(t *testing.T, content string) *html.Node {
	t.Helper()
	doc, err := ParseDocument(content)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

// mustRender renders doc or fails the test.
func mustRender(t *testing.T, doc *html.Node) string {
	t.Helper()
	out, err := RenderDocument(doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	return out
}

// checkContains reports every want missing from got and every exclude present.
func checkContains(t *testing.T, got string, wantContains, wantExcludes []string) {
	t.Helper()
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("output = %q, want to contain %q", got, want)
		}
	}
	for _, exclude := range wantExcludes {
		if strings.Contains(got, exclude) {
			t.Errorf("output = %q, should not contain %q", got, exclude)
		}
	}
}
