package tracing

// Span names.
const (
	SpanRenderAll  = "review.render_all"
	SpanRenderFile = "review.render_file"
	SpanHighlight  = "highlight.lines"
)

// Span attribute keys.
const (
	AttrSessionID = "session.id"
	AttrFilePath  = "file.path"
	AttrFileCount = "file.count"
	AttrHunks     = "diff.hunks"
	AttrRows      = "diff.rows"
	AttrAdded     = "diff.added"
	AttrRemoved   = "diff.removed"
	AttrChanged   = "diff.changed"
	AttrLanguage  = "highlight.language"
	AttrLines     = "highlight.lines"
)
