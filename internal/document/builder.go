// Package document builds an HTML node tree from markdown text.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hemmendinger/mdsite/internal/block"
	"github.com/hemmendinger/mdsite/internal/inline"
	"github.com/hemmendinger/mdsite/internal/node"
)

// Build converts a markdown document into an <html><body> tree.
// The body always starts with an empty <header>, followed by one <div>
// per block in document order.
func Build(markdown string) *node.Parent {
	blocks := block.Segment(markdown)

	children := make([]node.Node, 0, len(blocks)+1)
	children = append(children, node.NewParent("header", []node.Node{}, nil))
	for _, b := range blocks {
		children = append(children, BuildBlock(b))
	}

	body := node.NewParent("body", children, nil)
	return node.Wrap("html", body)
}

// BuildBlock classifies a single block and returns its <div> subtree.
func BuildBlock(b string) *node.Parent {
	typ := block.Classify(b)
	return node.Wrap("div", blockNode(b, typ))
}

func blockNode(b string, typ block.Type) *node.Parent {
	switch typ {
	case block.Heading:
		level := block.HeadingLevel(b)
		return node.NewParent(block.HeadingTag(level), inlineLeaves(b[level+1:]), nil)

	case block.Code:
		code := node.NewParent(typ.TagName(), []node.Node{node.Text(stripFence(b))}, nil)
		return node.Wrap("pre", code)

	case block.Quote:
		return node.NewParent(typ.TagName(), linesLeaves(b, 2), nil)

	case block.UnorderedList, block.OrderedList:
		width := 2
		if typ == block.OrderedList {
			width = 3
		}
		var items []node.Node
		for _, line := range ContentLines(b, width) {
			items = append(items, node.NewParent("li", inlineLeaves(line), nil))
		}
		if items == nil {
			items = []node.Node{}
		}
		return node.NewParent(typ.TagName(), items, nil)

	case block.Paragraph:
		return node.NewParent(typ.TagName(), inlineLeaves(b), nil)

	default:
		panic(fmt.Sprintf("document: unhandled block type %q", typ))
	}
}

// stripFence drops exactly three characters from each end of a code block.
// Backticks that belong to the content are removed too.
func stripFence(b string) string {
	n := len(block.CodeFence)
	if len(b) < 2*n {
		return ""
	}
	return b[n : len(b)-n]
}

// ContentLines splits a block into lines, drops empty ones and removes the
// first width characters of each. The marker itself is not checked.
func ContentLines(b string, width int) []string {
	var out []string
	for _, line := range strings.Split(b, "\n") {
		if line == "" {
			continue
		}
		out = append(out, dropRunes(line, width))
	}
	return out
}

// dropRunes returns s without its first n runes, or "" if s is shorter.
func dropRunes(s string, n int) string {
	for i := 0; i < n; i++ {
		if s == "" {
			return ""
		}
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}

// linesLeaves tokenizes every content line and concatenates the leaves.
func linesLeaves(b string, width int) []node.Node {
	leaves := []node.Node{}
	for _, line := range ContentLines(b, width) {
		leaves = append(leaves, inlineLeaves(line)...)
	}
	return leaves
}

func inlineLeaves(text string) []node.Node {
	spans := inline.Tokenize(text)
	leaves := make([]node.Node, 0, len(spans))
	for _, span := range spans {
		leaves = append(leaves, SpanToLeaf(span))
	}
	return leaves
}

// SpanToLeaf maps an inline span to the leaf that renders it.
func SpanToLeaf(span node.Span) *node.Leaf {
	switch span.Kind {
	case node.KindPlain:
		return node.Text(span.Text)
	case node.KindBold:
		return node.NewLeaf("b", span.Text, nil)
	case node.KindItalic:
		return node.NewLeaf("i", span.Text, nil)
	case node.KindCode:
		return node.NewLeaf("code", span.Text, nil)
	case node.KindLink:
		return node.NewLeaf("a", span.Text, node.Attrs("href", span.URL))
	case node.KindImage:
		return node.NewLeaf("img", "", node.Attrs("src", span.URL, "alt", span.Text))
	default:
		panic(fmt.Sprintf("document: unhandled span kind %q", span.Kind))
	}
}
