package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrMalformed is returned by Verify for output whose tags do not nest.
var ErrMalformed = errors.New("malformed html")

// Verify checks that every start tag in s is closed in order. Because text
// is never escaped, markup-like characters in the source can leak into the
// output; Verify catches the cases where that breaks nesting.
func Verify(s string) error {
	z := html.NewTokenizer(strings.NewReader(s))
	var stack []string

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenizing html: %w", err)
			}
			if len(stack) > 0 {
				return fmt.Errorf("%w: unclosed <%s>", ErrMalformed, stack[len(stack)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 {
				return fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			}
			top := stack[len(stack)-1]
			if top != string(name) {
				return fmt.Errorf("%w: </%s> closes <%s>", ErrMalformed, name, top)
			}
			stack = stack[:len(stack)-1]
		}
	}
}
