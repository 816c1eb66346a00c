package node

import (
	"errors"
	"strings"
)

// Errors reported when a tree violates its construction invariants.
// They indicate a defect in whatever built the tree, not bad input.
var (
	ErrMissingValue    = errors.New("leaf node has no value")
	ErrMissingTag      = errors.New("parent node has no tag")
	ErrMissingChildren = errors.New("parent node has no children")
)

// Attribute is a single HTML attribute.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an ordered attribute list. Order is insertion order and is
// kept when rendering.
type Attributes []Attribute

// Attrs builds an attribute list from alternating key/value pairs.
// A trailing key without a value is ignored.
func Attrs(kv ...string) Attributes {
	attrs := make(Attributes, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return attrs
}

// Get returns the value for key and whether it was present.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// HTML renders the attributes as ` key="value"` pairs in order.
// Values are not escaped. An empty or nil list renders as "".
func (a Attributes) HTML() string {
	if len(a) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, attr := range a {
		sb.WriteString(" ")
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Value)
		sb.WriteString(`"`)
	}
	return sb.String()
}

// Node is an element of the HTML tree: either a *Leaf or a *Parent.
type Node interface {
	node()
}

// Leaf is a node without children. With no Tag it stands for bare text.
type Leaf struct {
	Tag   string // Empty for a bare text node
	Value string
	Attrs Attributes

	hasValue bool
}

// NewLeaf creates a leaf with the given tag, value and attributes.
func NewLeaf(tag, value string, attrs Attributes) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs, hasValue: true}
}

// Text creates an untagged leaf holding raw text.
func Text(value string) *Leaf {
	return NewLeaf("", value, nil)
}

// HasValue reports whether the leaf was built with a value.
// Leaves declared as struct literals have none.
func (l *Leaf) HasValue() bool {
	return l != nil && l.hasValue
}

func (*Leaf) node() {}

// Parent is a node that wraps other nodes.
//
// A nil Children slice means the children were never supplied; a non-nil
// empty slice is a legitimately empty element.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    Attributes
}

// NewParent creates a parent node. Pass a non-nil slice, even when empty.
func NewParent(tag string, children []Node, attrs Attributes) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

// Wrap creates a parent holding exactly one child.
func Wrap(tag string, child Node) *Parent {
	return NewParent(tag, []Node{child}, nil)
}

func (*Parent) node() {}
