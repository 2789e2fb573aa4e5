// Package review ties the diff engine together: it renders whole file
// changes into pane lines and tracks which change is being reviewed.
package review

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/mrdiff/internal/changes"
	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/diff"
	"github.com/zjrosen/mrdiff/internal/highlight"
	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/render"
	"github.com/zjrosen/mrdiff/internal/tracing"
)

// Highlighter produces highlight spans for a batch of lines from one file.
type Highlighter interface {
	HighlightLinesContext(ctx context.Context, lines []string, path string) []highlight.LineSpans
}

// Stats counts what a file change contains.
type Stats struct {
	Hunks   int
	Added   int
	Removed int
	Changed int
}

// RenderedFile is a file change ready for display.
type RenderedFile struct {
	Path   string
	Title  string
	Status string
	Old    []render.PaneLine
	New    []render.PaneLine
	Rows   []diff.Row
	Stats  Stats
}

// Renderer runs the parse, align, highlight and render stages for a file.
type Renderer struct {
	highlighter Highlighter
	rows        *render.Renderer
	comments    comments.Lookup
	tracer      trace.Tracer
	workers     int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTracer records a span per rendered file.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = t
	}
}

// WithMaxConcurrency bounds how many files RenderAll renders at once.
func WithMaxConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRenderer creates a Renderer. lookup may be nil when there are no
// comments.
func NewRenderer(hl Highlighter, rows *render.Renderer, lookup comments.Lookup, opts ...Option) *Renderer {
	r := &Renderer{
		highlighter: hl,
		rows:        rows,
		comments:    lookup,
		tracer:      noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
		workers:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithComments returns a copy of r that uses lookup for indicators. The
// receiver is left untouched so renders already in flight are unaffected.
func (r *Renderer) WithComments(lookup comments.Lookup) *Renderer {
	cp := *r
	cp.comments = lookup
	return &cp
}

// Rows returns the row renderer, which also styles pane lines.
func (r *Renderer) Rows() *render.Renderer {
	return r.rows
}

// RenderFile renders one file change. All content lines of the file are
// highlighted in a single call so multi-line constructs keep their context.
func (r *Renderer) RenderFile(ctx context.Context, change changes.FileChange) RenderedFile {
	path := change.Path()
	ctx, span := r.tracer.Start(ctx, tracing.SpanRenderFile,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, path)))
	defer span.End()

	hunks := diff.ParseHunks(change.Diff)
	rows := diff.AlignHunks(hunks)
	lines := diff.ContentLines(rows)

	_, hlSpan := r.tracer.Start(ctx, tracing.SpanHighlight, trace.WithAttributes(
		attribute.String(tracing.AttrLanguage, highlight.LanguageForPath(path)),
		attribute.Int(tracing.AttrLines, len(lines)),
	))
	spans := r.highlighter.HighlightLinesContext(ctx, lines, path)
	hlSpan.End()

	oldPane, newPane := r.rows.RenderRows(rows, spans, path, r.comments)

	stats := statsFor(hunks, rows)
	span.SetAttributes(
		attribute.Int(tracing.AttrHunks, stats.Hunks),
		attribute.Int(tracing.AttrRows, len(rows)),
		attribute.Int(tracing.AttrAdded, stats.Added),
		attribute.Int(tracing.AttrRemoved, stats.Removed),
		attribute.Int(tracing.AttrChanged, stats.Changed),
	)
	log.Debug(log.CatReview, "rendered file", "path", path, "hunks", stats.Hunks, "rows", len(rows))

	return RenderedFile{
		Path:   path,
		Title:  change.Title(),
		Status: change.Status(),
		Old:    oldPane,
		New:    newPane,
		Rows:   rows,
		Stats:  stats,
	}
}

// RenderAll renders the changes concurrently. Results keep input order.
func (r *Renderer) RenderAll(ctx context.Context, list []changes.FileChange) []RenderedFile {
	ctx, span := r.tracer.Start(ctx, tracing.SpanRenderAll,
		trace.WithAttributes(attribute.Int(tracing.AttrFileCount, len(list))))
	defer span.End()

	mapper := iter.Mapper[changes.FileChange, RenderedFile]{MaxGoroutines: r.workers}
	return mapper.Map(list, func(c *changes.FileChange) RenderedFile {
		return r.RenderFile(ctx, *c)
	})
}

func statsFor(hunks []diff.Hunk, rows []diff.Row) Stats {
	s := Stats{Hunks: len(hunks)}
	for _, row := range rows {
		switch row.Kind {
		case diff.RowAdded:
			s.Added++
		case diff.RowRemoved:
			s.Removed++
		case diff.RowChanged:
			s.Changed++
		}
	}
	return s
}
