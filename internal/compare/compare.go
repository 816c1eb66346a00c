// Package compare renders a document with mdsite and with goldmark, a
// CommonMark implementation, so the two outputs can be checked side by side.
package compare

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/hemmendinger/mdsite/internal/document"
	"github.com/hemmendinger/mdsite/internal/render"
)

// Result holds both renderings of one document.
type Result struct {
	Ours      string
	Reference string

	// OursText and ReferenceText are the visible text of each rendering
	// with whitespace collapsed.
	OursText      string
	ReferenceText string
}

// TextEqual reports whether both renderings show the same text.
func (r *Result) TextEqual() bool {
	return r.OursText == r.ReferenceText
}

// Compare renders markdown both ways.
func Compare(markdown string) (*Result, error) {
	ours, err := render.Render(document.Build(markdown))
	if err != nil {
		return nil, fmt.Errorf("mdsite render: %w", err)
	}

	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("goldmark render: %w", err)
	}

	res := &Result{Ours: ours, Reference: buf.String()}
	if res.OursText, err = VisibleText(res.Ours); err != nil {
		return nil, err
	}
	if res.ReferenceText, err = VisibleText(res.Reference); err != nil {
		return nil, err
	}
	return res, nil
}

// VisibleText parses s as HTML and returns its text nodes joined by single
// spaces.
func VisibleText(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}
