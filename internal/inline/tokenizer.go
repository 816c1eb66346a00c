// Package inline splits a run of text into typed inline spans.
//
// Tokenizing happens in fixed passes: bold, italic, code, image, link.
// Every pass only looks at spans that are still plain, so a span typed by an
// earlier pass is never re-split by a later one. The order is part of the
// contract; swapping passes changes output for inputs that mix delimiters.
package inline

import (
	"regexp"
	"strings"

	"github.com/hemmendinger/mdsite/internal/node"
)

// Delimiter pairs a literal delimiter with the span kind it produces.
type Delimiter struct {
	Marker string
	Kind   node.Kind
}

// Delimiters are applied in this order.
var Delimiters = []Delimiter{
	{Marker: "**", Kind: node.KindBold},
	{Marker: "_", Kind: node.KindItalic},
	{Marker: "`", Kind: node.KindCode},
}

var (
	imagePattern = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

	// A link must be preceded by a space. This keeps it from matching the
	// bracket part of an image, and also means a link at the very start of
	// a span stays plain text. The space is consumed with the match.
	linkPattern = regexp.MustCompile(` \[(.*?)\]\((.*?)\)`)
)

// Pass transforms a span sequence into a new one.
type Pass func([]node.Span) []node.Span

// Passes returns the tokenizer passes in the order they run.
func Passes() []Pass {
	passes := make([]Pass, 0, len(Delimiters)+2)
	for _, d := range Delimiters {
		d := d
		passes = append(passes, func(spans []node.Span) []node.Span {
			return SplitDelimiter(spans, d.Marker, d.Kind)
		})
	}
	return append(passes, ExtractImages, ExtractLinks)
}

// Tokenize converts text into its inline spans. It never fails; text with no
// markup comes back as a single plain span, and empty text as no spans.
func Tokenize(text string) []node.Span {
	spans := []node.Span{node.Plain(text)}
	for _, pass := range Passes() {
		spans = pass(spans)
	}
	return spans
}

// SplitDelimiter splits every plain span on marker. Fragments between
// delimiter pairs become spans of kind; the rest stay plain. Empty fragments
// are kept as zero-length spans.
//
// An unmatched marker leaves an even number of fragments. The fragment after
// the unmatched marker stays plain.
func SplitDelimiter(spans []node.Span, marker string, kind node.Kind) []node.Span {
	out := make([]node.Span, 0, len(spans))
	for _, span := range spans {
		if !span.IsPlain() {
			out = append(out, span)
			continue
		}

		parts := strings.Split(span.Text, marker)
		unmatched := len(parts)%2 == 0
		for i, part := range parts {
			if i%2 == 1 && !(unmatched && i == len(parts)-1) {
				out = append(out, node.Span{Kind: kind, Text: part})
				continue
			}
			out = append(out, node.Plain(part))
		}
	}
	return out
}

// ExtractImages pulls ![alt](url) references out of plain spans.
func ExtractImages(spans []node.Span) []node.Span {
	return extract(spans, imagePattern, node.Image)
}

// ExtractLinks pulls " [label](url)" references out of plain spans.
func ExtractLinks(spans []node.Span) []node.Span {
	return extract(spans, linkPattern, node.Link)
}

// extract splits each plain span around pattern matches. Only non-empty
// text fragments stay plain, so an empty plain span is dropped even when
// nothing matches. Each fragment is followed by the next match converted
// with build.
func extract(spans []node.Span, pattern *regexp.Regexp, build func(text, url string) node.Span) []node.Span {
	out := make([]node.Span, 0, len(spans))
	for _, span := range spans {
		if !span.IsPlain() {
			out = append(out, span)
			continue
		}

		matches := pattern.FindAllStringSubmatch(span.Text, -1)
		fragments := pattern.Split(span.Text, -1)
		for i, fragment := range fragments {
			if fragment != "" {
				out = append(out, node.Plain(fragment))
			}
			if i < len(matches) {
				out = append(out, build(matches[i][1], matches[i][2]))
			}
		}
	}
	return out
}
