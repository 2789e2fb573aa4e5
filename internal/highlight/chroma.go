package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// tokenCategories maps chroma token types to capture categories. Types not
// listed fall back to their sub-category, then their category.
var tokenCategories = map[chroma.TokenType]string{
	chroma.Keyword:            "keyword",
	chroma.KeywordConstant:    "constant.builtin",
	chroma.KeywordDeclaration: "keyword",
	chroma.KeywordNamespace:   "keyword.import",
	chroma.KeywordPseudo:      "keyword",
	chroma.KeywordReserved:    "keyword",
	chroma.KeywordType:        "keyword.type",

	chroma.Name:                  "variable",
	chroma.NameAttribute:         "attribute",
	chroma.NameBuiltin:           "function.builtin",
	chroma.NameBuiltinPseudo:     "variable.builtin",
	chroma.NameClass:             "type",
	chroma.NameConstant:          "constant",
	chroma.NameDecorator:         "attribute",
	chroma.NameEntity:            "constant",
	chroma.NameException:         "type",
	chroma.NameFunction:          "function",
	chroma.NameFunctionMagic:     "function.builtin",
	chroma.NameKeyword:           "keyword",
	chroma.NameLabel:             "label",
	chroma.NameNamespace:         "namespace",
	chroma.NameOperator:          "operator",
	chroma.NameOther:             "variable",
	chroma.NamePseudo:            "variable.builtin",
	chroma.NameProperty:          "property",
	chroma.NameTag:               "tag",
	chroma.NameVariable:          "variable",
	chroma.NameVariableAnonymous: "variable",
	chroma.NameVariableClass:     "variable.builtin",
	chroma.NameVariableGlobal:    "variable.builtin",
	chroma.NameVariableInstance:  "variable",
	chroma.NameVariableMagic:     "variable.builtin",

	chroma.Literal:               "constant",
	chroma.LiteralString:         "string",
	chroma.LiteralStringAffix:    "string.special",
	chroma.LiteralStringAtom:     "string.special.symbol",
	chroma.LiteralStringBoolean:  "constant.builtin",
	chroma.LiteralStringDoc:      "string.documentation",
	chroma.LiteralStringEscape:   "string.escape",
	chroma.LiteralStringInterpol: "string.special",
	chroma.LiteralStringRegex:    "string.regexp",
	chroma.LiteralStringSymbol:   "string.special.symbol",
	chroma.LiteralNumber:         "number",
	chroma.LiteralNumberFloat:    "float",

	chroma.Operator:     "operator",
	chroma.OperatorWord: "keyword.operator",
	chroma.Punctuation:  "punctuation",

	chroma.Comment:            "comment",
	chroma.CommentPreproc:     "keyword.directive",
	chroma.CommentPreprocFile: "string.special.path",

	chroma.GenericHeading:    "markup.heading",
	chroma.GenericSubheading: "markup.heading",
	chroma.GenericEmph:       "markup.italic",
	chroma.GenericStrong:     "markup.strong",
	chroma.GenericInserted:   "diff.plus",
	chroma.GenericDeleted:    "diff.minus",
}

// categoryFor returns the capture category for a token, or "" for text and
// whitespace.
func categoryFor(t chroma.TokenType, value string) string {
	if t == chroma.Punctuation {
		return punctuationCategory(value)
	}
	if c, ok := tokenCategories[t]; ok {
		return c
	}
	if c, ok := tokenCategories[t.SubCategory()]; ok {
		return c
	}
	if c, ok := tokenCategories[t.Category()]; ok {
		return c
	}
	return ""
}

// punctuationCategory splits chroma's single punctuation type into brackets
// and delimiters when the whole token is one or the other.
func punctuationCategory(value string) string {
	switch {
	case value != "" && strings.Trim(value, "()[]{}") == "":
		return "punctuation.bracket"
	case value != "" && strings.Trim(value, ",;.:") == "":
		return "punctuation.delimiter"
	default:
		return "punctuation"
	}
}

// ChromaResolver provides grammars backed by chroma lexers.
type ChromaResolver struct{}

// NewChromaResolver creates a resolver over chroma's built-in lexer registry.
func NewChromaResolver() *ChromaResolver {
	return &ChromaResolver{}
}

// Load returns the grammar for a language id, or ErrNoGrammar when chroma has
// no lexer registered under that name or alias.
func (r *ChromaResolver) Load(_ context.Context, language string) (Grammar, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGrammar, language)
	}
	return &chromaGrammar{
		name:  lexer.Config().Name,
		lexer: chroma.Coalesce(lexer),
	}, nil
}

type chromaGrammar struct {
	name  string
	lexer chroma.Lexer
}

// Captures tokenises src in one pass and turns every categorised token into
// a capture over its byte range.
func (g *chromaGrammar) Captures(src []byte) ([]Capture, error) {
	// Lexers with EnsureNL append a newline to the last token when the input
	// lacks one; tokenise the padded text so offsets still line up. Captures
	// are clipped back to len(src) below.
	text := string(src)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	// EnsureLF would rewrite \r\n and shift offsets.
	it, err := g.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", g.name, err)
	}

	var captures []Capture
	offset := 0
	for token := it(); token != chroma.EOF; token = it() {
		if token.Value == "" {
			continue
		}

		start := offset
		if !strings.HasPrefix(text[offset:], token.Value) {
			// Some lexers drop or synthesise text (a trailing newline, say).
			idx := strings.Index(text[offset:], token.Value)
			if idx < 0 {
				if strings.TrimSpace(token.Value) == "" {
					continue
				}
				return nil, fmt.Errorf("tokenise %s: token %q not found at offset %d", g.name, token.Value, offset)
			}
			start = offset + idx
		}
		end := start + len(token.Value)
		offset = end

		category := categoryFor(token.Type, token.Value)
		if category == "" || start >= len(src) {
			continue
		}
		captures = append(captures, Capture{Start: start, End: min(end, len(src)), Category: category})
	}

	return captures, nil
}
