package document

import (
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemmendinger/mdsite/internal/node"
	"github.com/hemmendinger/mdsite/internal/render"
)

func renderBlock(t *testing.T, b string) string {
	t.Helper()
	out, err := render.Render(BuildBlock(b))
	require.NoError(t, err)
	return out
}

func TestBuildRoundTrip(t *testing.T) {
	out, err := render.Render(Build("# Title\n\nSome **bold** text."))
	require.NoError(t, err)
	assert.Equal(t,
		"<html><body><header></header><div><h1>Title</h1></div><div><p>Some <b>bold</b> text.</p></div></body></html>",
		out)
}

func TestBuildEmptyDocument(t *testing.T) {
	out, err := render.Render(Build(""))
	require.NoError(t, err)
	assert.Equal(t, "<html><body><header></header></body></html>", out)
}

func TestBuildShape(t *testing.T) {
	doc := Build("a\n\nb")
	assert.Equal(t, "html", doc.Tag)
	require.Len(t, doc.Children, 1)

	body, ok := doc.Children[0].(*node.Parent)
	require.True(t, ok)
	assert.Equal(t, "body", body.Tag)
	require.Len(t, body.Children, 3)

	header, ok := body.Children[0].(*node.Parent)
	require.True(t, ok)
	assert.Equal(t, "header", header.Tag)
	assert.NotNil(t, header.Children)
	assert.Empty(t, header.Children)
}

func TestBuildBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraph keeps newlines",
			input: "line one\nline _two_",
			want:  "<div><p>line one\nline <i>two</i></p></div>",
		},
		{
			name:  "heading level",
			input: "### Third",
			want:  "<div><h3>Third</h3></div>",
		},
		{
			name:  "heading keeps trailing hashes",
			input: "## Title ##",
			want:  "<div><h2>Title ##</h2></div>",
		},
		{
			name:  "code skips inline tokenizing",
			input: "```\nx = **y** and _z_\n```",
			want:  "<div><pre><code>\nx = **y** and _z_\n</code></pre></div>",
		},
		{
			name:  "code strips content backticks",
			input: "````x````",
			want:  "<div><pre><code>`x`</code></pre></div>",
		},
		{
			name:  "bare fences",
			input: "``````",
			want:  "<div><pre><code></code></pre></div>",
		},
		{
			name:  "quote lines are concatenated",
			input: "> first\n> **second**",
			want:  "<div><quote>first<b>second</b></quote></div>",
		},
		{
			name:  "quote strips two characters",
			input: ">ab\n> c",
			want:  "<div><quote>bc</quote></div>",
		},
		{
			name:  "quote strips two characters, not bytes",
			input: ">é merci\n>é x",
			want:  "<div><quote> merci x</quote></div>",
		},
		{
			name:  "list items strip multibyte markers",
			input: "- ünï\n- ö",
			want:  "<div><ul><li>ünï</li><li>ö</li></ul></div>",
		},
		{
			name:  "unordered list",
			input: "- one\n- `two`",
			want:  "<div><ul><li>one</li><li><code>two</code></li></ul></div>",
		},
		{
			name:  "ordered list",
			input: "1. one\n2. two\n3. three",
			want:  "<div><ol><li>one</li><li>two</li><li>three</li></ol></div>",
		},
		{
			name:  "mixed list is a paragraph",
			input: "- one\ntwo",
			want:  "<div><p>- one\ntwo</p></div>",
		},
		{
			name:  "link and image",
			input: "see [docs](https://d) and ![cat](/cat.png)",
			want:  `<div><p>see<a href="https://d">docs</a> and <img src="/cat.png" alt="cat"></img></p></div>`,
		},
		{
			name:  "link at start stays text",
			input: "[docs](https://d)",
			want:  "<div><p>[docs](https://d)</p></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderBlock(t, tt.input))
		})
	}
}

func TestOrderedListTenthItem(t *testing.T) {
	var b string
	for i := 1; i <= 10; i++ {
		if i > 1 {
			b += "\n"
		}
		b += strconv.Itoa(i) + ". item"
	}
	out := renderBlock(t, b)
	// Only the first three bytes are stripped, so "10. item" keeps a space.
	assert.Contains(t, out, "<li> item</li></ol>")
}

func TestSpanToLeaf(t *testing.T) {
	tests := []struct {
		name string
		span node.Span
		want string
	}{
		{"plain", node.Plain("This is a text node"), "This is a text node"},
		{"bold", node.Bold("b"), "<b>b</b>"},
		{"italic", node.Italic("i"), "<i>i</i>"},
		{"code", node.Code("c"), "<code>c</code>"},
		{"link", node.Link("l", "https://u"), `<a href="https://u">l</a>`},
		{"image", node.Image("alt", "https://u/i.png"), `<img src="https://u/i.png" alt="alt"></img>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.MustRender(SpanToLeaf(tt.span)))
		})
	}
}

func TestSpanToLeafCoversAllKinds(t *testing.T) {
	for _, k := range node.AllKinds {
		assert.NotPanics(t, func() { SpanToLeaf(node.Span{Kind: k}) }, "kind %s", k)
	}
	assert.Panics(t, func() { SpanToLeaf(node.Span{Kind: "strike"}) })
}

func TestContentLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ContentLines("- a\n\n- b", 2))
	assert.Equal(t, []string{""}, ContentLines(">", 2))
	assert.Nil(t, ContentLines("", 2))
	assert.Equal(t, []string{" merci", ""}, ContentLines(">é merci\n>é", 2))
}

func TestBuildKeepsUTF8Valid(t *testing.T) {
	out, err := render.Render(Build(">é merci\n>é\n\n1.é x\n2. ü"))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(out), "output %q is not valid UTF-8", out)
}

func TestBuiltTreeVerifies(t *testing.T) {
	md := "# Title\n\n> quote\n\n- a\n- b\n\n1. x\n2. y\n\n```\ncode\n```\n\nText with ![i](/i.png) and a [l](/l)."
	out, err := render.Render(Build(md))
	require.NoError(t, err)
	assert.NoError(t, render.Verify(out))
}
