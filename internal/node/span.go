// Package node defines the value types that flow through the markdown
// pipeline: inline spans produced by the tokenizer and the HTML tree built
// from them.
package node

import "fmt"

// Kind identifies the formatting role of an inline span.
type Kind string

const (
	// KindPlain is unformatted text.
	KindPlain Kind = "plain"

	// KindBold is text wrapped in ** delimiters.
	KindBold Kind = "bold"

	// KindItalic is text wrapped in _ delimiters.
	KindItalic Kind = "italic"

	// KindCode is text wrapped in ` delimiters.
	KindCode Kind = "code"

	// KindLink is a [label](url) reference.
	KindLink Kind = "link"

	// KindImage is an ![alt](url) reference.
	KindImage Kind = "image"
)

// AllKinds lists every span kind. Anything that switches on Kind is
// expected to handle each of these.
var AllKinds = []Kind{
	KindPlain,
	KindBold,
	KindItalic,
	KindCode,
	KindLink,
	KindImage,
}

// Span is one typed fragment of inline text.
// Spans are comparable, so == is structural equality.
type Span struct {
	Kind Kind   // Formatting role
	Text string // Text content, or alt text for images
	URL  string // Target for links and images, empty otherwise
}

// Plain creates an unformatted span.
func Plain(text string) Span {
	return Span{Kind: KindPlain, Text: text}
}

// Bold creates a bold span.
func Bold(text string) Span {
	return Span{Kind: KindBold, Text: text}
}

// Italic creates an italic span.
func Italic(text string) Span {
	return Span{Kind: KindItalic, Text: text}
}

// Code creates an inline code span.
func Code(text string) Span {
	return Span{Kind: KindCode, Text: text}
}

// Link creates a link span.
func Link(text, url string) Span {
	return Span{Kind: KindLink, Text: text, URL: url}
}

// Image creates an image span. The alt text is stored in Text.
func Image(altText, url string) Span {
	return Span{Kind: KindImage, Text: altText, URL: url}
}

// IsPlain reports whether the span is still untyped text.
func (s Span) IsPlain() bool {
	return s.Kind == KindPlain
}

func (s Span) String() string {
	if s.URL != "" {
		return fmt.Sprintf("Span(%s, %q, %q)", s.Kind, s.Text, s.URL)
	}
	return fmt.Sprintf("Span(%s, %q)", s.Kind, s.Text)
}
