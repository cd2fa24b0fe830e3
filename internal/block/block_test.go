package block

import (
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSplit
// ---------------------------------------------------------------------------

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "three blocks",
			doc: `
This is **bolded** paragraph

This is another paragraph with _italic_ text and ` + "`code`" + ` here
This is the same paragraph on a new line

- This is a list
- with items
`,
			want: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{
			name: "extra blank lines and indentation",
			doc: `
This is **bolded** paragraph


            This is another paragraph with _italic_ text and ` + "`code`" + ` here
This is the same paragraph on a new line



- This is a list
- with items
`,
			want: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			doc:  " \n\n\t\n\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSplit_NoBlankLines checks that text without blank-line runs comes back
// as one block equal to the trimmed input.
func TestSplit_NoBlankLines(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"single line",
		"  leading and trailing  ",
		"line one\nline two\nline three",
		"\n# heading\n- item\n",
		"tab\tseparated\n  indented",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			got := Split(in)
			want := []string{strings.TrimSpace(in)}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Split(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassify
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
		want  Kind
	}{
		{"code fence", "```This is a code block```", Code},
		{"short fence is paragraph", "``This is not a code block``", Paragraph},
		{"inline code block", "```x```", Code},
		{"multiline code", "```\nfunc main() {}\n```", Code},
		{"h3", "### This is heading text", Heading},
		{"h1", "# H", Heading},
		{"h6", "###### H", Heading},
		{"seven hashes", "####### This is heading text", Paragraph},
		{"hash without space", "#nospace", Paragraph},
		{"quote", "> This is a quote\n> This is another quote", Quote},
		{"quote broken by plain line", "> This is a quote\nThis is not a quote", Paragraph},
		{"short quote", "> a\n> b", Quote},
		{"short quote broken", "> a\nb", Paragraph},
		{"unordered", "- This is unordered list text\n- This is a second line", UnorderedList},
		{"unordered missing space", "- This is unordered list text\n-This is a second line", Paragraph},
		{"ordered", "1. This is an ordered list\n2. This is a second line", OrderedList},
		{"ordered out of sequence", "1. This is an ordered list\n7. This should be flagged as incorrect", Paragraph},
		{"ordered short", "1. a\n2. b", OrderedList},
		{"ordered skipping", "1. a\n7. b", Paragraph},
		{"ordered not starting at one", "2. a\n3. b", Paragraph},
		{"ordered past nine", "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h\n9. i\n10. j", OrderedList},
		{"plain text", "Just some words.", Paragraph},
		{"code wins over heading", "```# not a heading```", Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.block); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.block, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{Paragraph, "paragraph"},
		{Heading, "heading"},
		{Code, "code"},
		{Quote, "quote"},
		{UnorderedList, "unordered list"},
		{OrderedList, "ordered list"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
