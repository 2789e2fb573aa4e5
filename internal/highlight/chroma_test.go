package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		name  string
		token chroma.TokenType
		value string
		want  string
	}{
		{"keyword type", chroma.KeywordType, "int", "keyword.type"},
		{"function", chroma.NameFunction, "main", "function"},
		{"escape", chroma.LiteralStringEscape, `\n`, "string.escape"},
		{"double string via sub-category", chroma.LiteralStringDouble, `"x"`, "string"},
		{"hex number via sub-category", chroma.LiteralNumberHex, "0xff", "number"},
		{"single comment via category", chroma.CommentSingle, "// x", "comment"},
		{"brackets", chroma.Punctuation, "({", "punctuation.bracket"},
		{"delimiters", chroma.Punctuation, ",;", "punctuation.delimiter"},
		{"mixed punctuation", chroma.Punctuation, "(,", "punctuation"},
		{"text", chroma.Text, "   ", ""},
		{"whitespace", chroma.TextWhitespace, "\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, categoryFor(tt.token, tt.value))
		})
	}
}

func TestChromaGrammar_OffsetsMatchSource(t *testing.T) {
	g, err := NewChromaResolver().Load(t.Context(), "go")
	require.NoError(t, err)

	src := []byte("x := \"héllo\"\r\ny := 0x1F // done")
	captures, err := g.Captures(src)
	require.NoError(t, err)
	require.NotEmpty(t, captures)

	prevEnd := 0
	for _, c := range captures {
		require.GreaterOrEqual(t, c.Start, prevEnd)
		require.LessOrEqual(t, c.End, len(src))
		require.Less(t, c.Start, c.End)
		prevEnd = c.End
	}

	last := captures[len(captures)-1]
	require.Equal(t, "// done", string(src[last.Start:last.End]))
	require.Equal(t, "comment", last.Category)
}

func TestChromaGrammar_SourceWithoutTrailingNewline(t *testing.T) {
	tests := []struct {
		language string
		src      string
		last     string
	}{
		{"rust", "fn main() {}\n// c", "// c"},
		{"cpp", "int x;\n// c", "// c"},
		{"javascript", "let x = 1;\n// c", "// c"},
		{"typescript", "const x = 1;\n// c", "// c"},
		{"make", "all: build\n# c", "# c"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			g, err := NewChromaResolver().Load(t.Context(), tt.language)
			require.NoError(t, err)

			src := []byte(tt.src)
			captures, err := g.Captures(src)
			require.NoError(t, err)
			require.NotEmpty(t, captures)

			last := captures[len(captures)-1]
			require.LessOrEqual(t, last.End, len(src))
			require.Equal(t, tt.last, string(src[last.Start:last.End]))
		})
	}
}
