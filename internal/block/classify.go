package block

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeFence opens and closes a code block.
const CodeFence = "```"

var headingRegex = regexp.MustCompile(`^(#{1,6}) `)

// Rule decides whether a block has a particular type.
type Rule struct {
	Name  string
	Type  Type
	Match func(block string, lines []string) bool
}

// Rules are checked in order; the first match wins. A block matching none
// of them is a Paragraph.
var Rules = []Rule{
	{
		Name: "heading",
		Type: Heading,
		Match: func(block string, _ []string) bool {
			return headingRegex.MatchString(block)
		},
	},
	{
		Name: "fenced_code",
		Type: Code,
		Match: func(block string, _ []string) bool {
			return strings.HasPrefix(block, CodeFence) && strings.HasSuffix(block, CodeFence)
		},
	},
	{
		Name: "quote",
		Type: Quote,
		Match: func(_ string, lines []string) bool {
			return everyLine(lines, func(_ int, line string) bool {
				return strings.HasPrefix(line, ">")
			})
		},
	},
	{
		Name: "unordered_list",
		Type: UnorderedList,
		Match: func(_ string, lines []string) bool {
			return everyLine(lines, func(_ int, line string) bool {
				return strings.HasPrefix(line, "- ")
			})
		},
	},
	{
		Name: "ordered_list",
		Type: OrderedList,
		Match: func(_ string, lines []string) bool {
			return everyLine(lines, func(i int, line string) bool {
				return strings.HasPrefix(line, fmt.Sprintf("%d. ", i+1))
			})
		},
	},
}

// Classify returns the structural type of a block. It is total: anything
// unrecognized is a Paragraph.
func Classify(block string) Type {
	t, _ := Detect(block)
	return t
}

// Detect classifies a block and also reports the name of the rule that
// matched, or "" for the Paragraph fallback.
func Detect(block string) (Type, string) {
	lines := strings.Split(block, "\n")
	for _, r := range Rules {
		if r.Match(block, lines) {
			return r.Type, r.Name
		}
	}
	return Paragraph, ""
}

// HeadingLevel returns the number of leading '#' of a heading block, or 0
// if the block is not a heading.
func HeadingLevel(block string) int {
	m := headingRegex.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// everyLine reports whether ok holds for every line. A single failing line
// rejects the whole block.
func everyLine(lines []string, ok func(i int, line string) bool) bool {
	for i, line := range lines {
		if !ok(i, line) {
			return false
		}
	}
	return true
}
