package block

import "strings"

// Separator divides one block from the next.
const Separator = "\n\n"

// Segment splits a document into blocks on blank lines. Each block is
// trimmed and blocks that are empty after trimming are dropped.
func Segment(doc string) []string {
	parts := strings.Split(doc, Separator)
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, part)
	}
	return blocks
}
