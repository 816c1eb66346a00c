// Package render serializes node trees to HTML strings.
package render

import (
	"fmt"
	"strings"

	"github.com/hemmendinger/mdsite/internal/node"
)

// Render returns the HTML for n and its descendants.
//
// Text is written verbatim; nothing is escaped. A Leaf renders its
// attributes but a Parent does not.
func Render(n node.Node) (string, error) {
	var sb strings.Builder
	if err := write(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustRender is like Render but panics on a malformed tree. Trees built by
// the document package never trigger it.
func MustRender(n node.Node) string {
	out, err := Render(n)
	if err != nil {
		panic(err)
	}
	return out
}

func write(sb *strings.Builder, n node.Node) error {
	switch n := n.(type) {
	case *node.Leaf:
		return writeLeaf(sb, n)
	case *node.Parent:
		return writeParent(sb, n)
	default:
		return fmt.Errorf("render: unsupported node type %T", n)
	}
}

func writeLeaf(sb *strings.Builder, l *node.Leaf) error {
	if l == nil {
		return fmt.Errorf("render leaf: %w", node.ErrMissingValue)
	}
	if !l.HasValue() {
		return fmt.Errorf("render leaf <%s>: %w", l.Tag, node.ErrMissingValue)
	}
	if l.Tag == "" {
		sb.WriteString(l.Value)
		return nil
	}
	fmt.Fprintf(sb, "<%s%s>%s</%s>", l.Tag, l.Attrs.HTML(), l.Value, l.Tag)
	return nil
}

func writeParent(sb *strings.Builder, p *node.Parent) error {
	if p == nil || p.Tag == "" {
		return fmt.Errorf("render parent: %w", node.ErrMissingTag)
	}
	if p.Children == nil {
		return fmt.Errorf("render parent <%s>: %w", p.Tag, node.ErrMissingChildren)
	}

	sb.WriteString("<" + p.Tag + ">")
	for _, child := range p.Children {
		if err := write(sb, child); err != nil {
			return err
		}
	}
	sb.WriteString("</" + p.Tag + ">")
	return nil
}
