// Package highlight computes per-line syntax highlight fragments from a
// single parse of a whole batch of source lines.
package highlight

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/zjrosen/mrdiff/internal/log"
)

// Fragment is a piece of a source line. Category is empty for unstyled text;
// otherwise Style holds its resolved style.
type Fragment struct {
	Text     string
	Category string
	Style    Style
}

// Styled reports whether the fragment carries a style.
func (f Fragment) Styled() bool {
	return f.Category != ""
}

// LineSpans is the ordered list of fragments covering one source line.
type LineSpans []Fragment

// Text concatenates the fragment texts.
func (s LineSpans) Text() string {
	var b strings.Builder
	for _, f := range s {
		b.WriteString(f.Text)
	}
	return b.String()
}

// PlainLine returns the unstyled spans for a line. Embedded newlines are
// dropped, so Text round-trips every line that has none.
func PlainLine(line string) LineSpans {
	return LineSpans{{Text: stripNewlines(line)}}
}

func stripNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "")
}

// PlainSpans returns one unstyled fragment per line.
func PlainSpans(lines []string) []LineSpans {
	out := make([]LineSpans, len(lines))
	for i, line := range lines {
		out[i] = PlainLine(line)
	}
	return out
}

// Engine turns batches of source lines into highlight spans. The zero value
// is not usable; create one with New.
type Engine struct {
	enabled  bool
	disabled map[string]bool
	styles   StyleTable
	resolver Resolver
	grammars *GrammarCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver sets where grammars come from. Defaults to chroma lexers.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithStyles replaces the capture style table.
func WithStyles(styles StyleTable) Option {
	return func(e *Engine) {
		e.styles = styles
	}
}

// WithDisabledLanguages makes the given language ids render plain.
func WithDisabledLanguages(languages ...string) Option {
	return func(e *Engine) {
		for _, lang := range languages {
			e.disabled[strings.ToLower(lang)] = true
		}
	}
}

// WithEnabled turns highlighting on or off as a whole.
func WithEnabled(enabled bool) Option {
	return func(e *Engine) {
		e.enabled = enabled
	}
}

// New creates an engine with its own grammar cache.
func New(opts ...Option) *Engine {
	e := &Engine{
		enabled:  true,
		disabled: make(map[string]bool),
		styles:   DefaultStyles(),
		resolver: NewChromaResolver(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.grammars = NewGrammarCache(e.resolver)
	return e
}

// Styles returns the engine's capture style table.
func (e *Engine) Styles() StyleTable {
	return e.styles
}

// Grammars returns the engine's grammar cache.
func (e *Engine) Grammars() *GrammarCache {
	return e.grammars
}

// HighlightLines returns one LineSpans per input line, in order. The lines
// are parsed together as one buffer so constructs spanning lines are seen in
// context. Unknown languages and any grammar failure yield plain spans; this
// never fails.
func (e *Engine) HighlightLines(lines []string, filePath string) []LineSpans {
	return e.HighlightLinesContext(context.Background(), lines, filePath)
}

// HighlightLinesContext is HighlightLines with a context for grammar loading.
func (e *Engine) HighlightLinesContext(ctx context.Context, lines []string, filePath string) []LineSpans {
	if len(lines) == 0 {
		return nil
	}
	if !e.enabled {
		return PlainSpans(lines)
	}

	language := LanguageForPath(filePath)
	if language == "" || e.disabled[language] {
		return PlainSpans(lines)
	}

	grammar, err := e.grammars.Get(ctx, language)
	if err != nil {
		return PlainSpans(lines)
	}

	spans, err := e.highlight(grammar, lines)
	if err != nil {
		log.Debug(log.CatHighlight, "highlight failed, using plain text",
			"path", filePath, "language", language, "error", err.Error())
		return PlainSpans(lines)
	}
	return spans
}

// styledCapture is a capture with its style resolved.
type styledCapture struct {
	start, end int
	category   string
	style      Style
}

func (e *Engine) highlight(grammar Grammar, lines []string) (spans []LineSpans, err error) {
	defer func() {
		if r := recover(); r != nil {
			spans, err = nil, fmt.Errorf("grammar panicked: %v", r)
		}
	}()

	src := []byte(strings.Join(lines, "\n"))
	captures, err := grammar.Captures(src)
	if err != nil {
		return nil, err
	}

	styled := make([]styledCapture, 0, len(captures))
	for _, c := range captures {
		style, ok := e.styles.Resolve(c.Category)
		if !ok {
			continue
		}
		start, end := max(c.Start, 0), min(c.End, len(src))
		if start >= end {
			continue
		}
		styled = append(styled, styledCapture{start: start, end: end, category: c.Category, style: style})
	}
	slices.SortStableFunc(styled, func(a, b styledCapture) int {
		return a.start - b.start
	})

	return splitLines(src, lines, styled), nil
}

// splitLines cuts the sorted captures at line boundaries. When captures
// overlap, one that starts before the current position is skipped so the
// earlier capture wins.
func splitLines(src []byte, lines []string, captures []styledCapture) []LineSpans {
	out := make([]LineSpans, len(lines))
	cursor := 0
	lineStart := 0

	for i, line := range lines {
		lineEnd := lineStart + len(line)
		var spans LineSpans
		pos := lineStart

		for cursor < len(captures) && captures[cursor].end <= lineStart {
			cursor++
		}

		for j := cursor; j < len(captures); j++ {
			c := captures[j]
			if c.start >= lineEnd {
				break
			}
			if c.end <= lineStart {
				continue
			}

			start, end := max(c.start, lineStart), min(c.end, lineEnd)
			if start < pos {
				continue
			}
			if pos < start {
				spans = appendFragment(spans, Fragment{Text: string(src[pos:start])})
			}
			spans = appendFragment(spans, Fragment{Text: string(src[start:end]), Category: c.category, Style: c.style})
			pos = end
		}

		if pos < lineEnd {
			spans = appendFragment(spans, Fragment{Text: string(src[pos:lineEnd])})
		}
		if len(spans) == 0 {
			spans = PlainLine(line)
		}

		out[i] = spans
		lineStart = lineEnd + 1
	}

	return out
}

// appendFragment adds f without embedded newlines, skipping it when nothing
// is left.
func appendFragment(spans LineSpans, f Fragment) LineSpans {
	f.Text = stripNewlines(f.Text)
	if f.Text == "" {
		return spans
	}
	return append(spans, f)
}
