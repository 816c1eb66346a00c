// Package block segments a markdown document into blocks and classifies
// each block's structural type.
package block

import "fmt"

// Type is the structural type of a block.
type Type string

const (
	// Paragraph is the fallback for any block no other rule claims.
	Paragraph Type = "paragraph"

	// Heading is a block starting with 1-6 '#' and a space.
	Heading Type = "heading"

	// Code is a block fenced by ``` at both ends.
	Code Type = "code"

	// Quote is a block whose every line starts with '>'.
	Quote Type = "quote"

	// UnorderedList is a block whose every line starts with "- ".
	UnorderedList Type = "unordered_list"

	// OrderedList is a block whose lines start with "1. ", "2. ", ... in order.
	OrderedList Type = "ordered_list"
)

// AllTypes lists every block type.
var AllTypes = []Type{
	Paragraph,
	Heading,
	Code,
	Quote,
	UnorderedList,
	OrderedList,
}

// TagName returns the HTML element used for a block of this type.
// Headings need their level; see HeadingTag.
func (t Type) TagName() string {
	switch t {
	case Paragraph:
		return "p"
	case Heading:
		return "h1"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "ul"
	case OrderedList:
		return "ol"
	default:
		return "p"
	}
}

// HeadingTag returns the element name for a heading of the given level.
func HeadingTag(level int) string {
	return fmt.Sprintf("h%d", level)
}
