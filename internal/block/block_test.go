package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"three blocks", "a\n\nb\n\nc", []string{"a", "b", "c"}},
		{"whitespace blocks dropped", "\nX\n\n\nY\n", []string{"X", "Y"}},
		{"multi-line block kept whole", "line one\nline two\n\n- a\n- b", []string{"line one\nline two", "- a\n- b"}},
		{"only blank", "\n\n   \n\n", []string{}},
		{"empty document", "", []string{}},
		{"surrounding spaces trimmed", "  # Title  \n\n\tbody\t", []string{"# Title", "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Type
	}{
		{"h1", "# Title", Heading},
		{"h6", "###### Deep", Heading},
		{"seven hashes", "####### Too deep", Paragraph},
		{"hash without space", "#NoSpace", Paragraph},
		{"trailing hashes kept as heading", "## Title ##", Heading},
		{"code", "```\nfmt.Println()\n```", Code},
		{"bare fences", "``````", Code},
		{"unterminated code", "```\nx", Paragraph},
		{"quote", "> a\n> b", Quote},
		{"quote without space", ">a\n>b", Quote},
		{"broken quote", "> a\nb", Paragraph},
		{"unordered", "- a\n- b\n- c", UnorderedList},
		{"broken unordered", "- a\n-b", Paragraph},
		{"star is not a bullet", "* a", Paragraph},
		{"ordered", "1. a\n2. b\n3. c", OrderedList},
		{"ordered gap", "1. a\n3. b", Paragraph},
		{"ordered repeat", "1. a\n1. b", Paragraph},
		{"ordered wrong start", "2. a\n3. b", Paragraph},
		{"ordered non numeric", "a. x", Paragraph},
		{"paragraph", "Just some text.", Paragraph},
		{"empty", "", Paragraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// A heading wins over anything else the block might look like.
	assert.Equal(t, Heading, Classify("# ```\n```"))
	// Code wins over quote.
	assert.Equal(t, Code, Classify("```> a```"))
}

func TestDetectRuleName(t *testing.T) {
	typ, name := Detect("- item")
	assert.Equal(t, UnorderedList, typ)
	assert.Equal(t, "unordered_list", name)

	typ, name = Detect("plain")
	assert.Equal(t, Paragraph, typ)
	assert.Equal(t, "", name)
}

func TestHeadingLevel(t *testing.T) {
	for level := 1; level <= 6; level++ {
		block := ""
		for i := 0; i < level; i++ {
			block += "#"
		}
		assert.Equal(t, level, HeadingLevel(block+" x"))
	}
	assert.Equal(t, 0, HeadingLevel("plain"))
	assert.Equal(t, 0, HeadingLevel("####### x"))
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "p", Paragraph.TagName())
	assert.Equal(t, "quote", Quote.TagName())
	assert.Equal(t, "ul", UnorderedList.TagName())
	assert.Equal(t, "ol", OrderedList.TagName())
	assert.Equal(t, "code", Code.TagName())
	assert.Equal(t, "h3", HeadingTag(3))
}

func TestEveryTypeHasTag(t *testing.T) {
	for _, typ := range AllTypes {
		assert.NotEmpty(t, typ.TagName(), "type %s", typ)
	}
}
