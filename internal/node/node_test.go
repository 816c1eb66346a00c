package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanEquality(t *testing.T) {
	assert.Equal(t, Bold("This is a text node"), Bold("This is a text node"))
	assert.NotEqual(t, Plain("Some text"), Plain("Some other text"))
	assert.NotEqual(t, Plain("Some text"), Bold("Some text"))
	assert.NotEqual(t, Link("Some text", "https://someurl.com"), Plain("Some text"))
	assert.Equal(t, Link("Some text", "https://someurl.com"), Link("Some text", "https://someurl.com"))
	assert.True(t, Image("alt", "u") == Image("alt", "u"))
}

func TestSpanConstructors(t *testing.T) {
	tests := []struct {
		name string
		span Span
		kind Kind
		text string
		url  string
	}{
		{"plain", Plain("a"), KindPlain, "a", ""},
		{"bold", Bold("b"), KindBold, "b", ""},
		{"italic", Italic("i"), KindItalic, "i", ""},
		{"code", Code("c"), KindCode, "c", ""},
		{"link", Link("label", "https://x"), KindLink, "label", "https://x"},
		{"image", Image("alt", "/img.png"), KindImage, "alt", "/img.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.span.Kind)
			assert.Equal(t, tt.text, tt.span.Text)
			assert.Equal(t, tt.url, tt.span.URL)
		})
	}
}

func TestAttributesHTML(t *testing.T) {
	attrs := Attrs("href", "somelink", "color", "someColor")
	assert.Equal(t, ` href="somelink" color="someColor"`, attrs.HTML())

	var none Attributes
	assert.Equal(t, "", none.HTML())
	assert.Equal(t, "", Attrs().HTML())
}

func TestAttributesKeepInsertionOrder(t *testing.T) {
	attrs := Attrs("src", "/a.png", "alt", "a")
	assert.Equal(t, ` src="/a.png" alt="a"`, attrs.HTML())

	v, ok := attrs.Get("alt")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = attrs.Get("title")
	assert.False(t, ok)
}

func TestAttrsIgnoresDanglingKey(t *testing.T) {
	assert.Len(t, Attrs("href", "x", "dangling"), 1)
}

func TestLeafValuePresence(t *testing.T) {
	assert.True(t, Text("").HasValue())
	assert.True(t, NewLeaf("img", "", Attrs("src", "x")).HasValue())
	assert.False(t, (&Leaf{Tag: "b"}).HasValue())

	var nilLeaf *Leaf
	assert.False(t, nilLeaf.HasValue())
}

func TestParentChildrenNilVersusEmpty(t *testing.T) {
	empty := NewParent("header", []Node{}, nil)
	assert.NotNil(t, empty.Children)
	assert.Len(t, empty.Children, 0)

	absent := &Parent{Tag: "div"}
	assert.Nil(t, absent.Children)

	wrapped := Wrap("div", Text("x"))
	assert.Len(t, wrapped.Children, 1)
}
