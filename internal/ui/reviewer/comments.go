package reviewer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/ui/markdown"
	"github.com/zjrosen/mrdiff/internal/ui/overlay"
)

const (
	maxOverlayWidth  = 80
	maxOverlayHeight = 24

	// title, rule, blank and footer rows inside the border
	overlayChrome = 6
)

// commentOverlay shows the comment thread of one new-file line.
type commentOverlay struct {
	line   int
	width  int
	height int
	view   viewport.Model
}

func (c *commentOverlay) View() string {
	return overlay.Box{
		Title:  fmt.Sprintf("Comments for line %d", c.line),
		Body:   c.view.View(),
		Footer: "j/k scroll • esc close",
		Width:  c.width,
		Height: c.height,
	}.Render()
}

// openComments shows the thread for line of the current file. Lines
// without comments leave the overlay closed.
func (m *Model) openComments(line int) {
	if m.file == nil {
		return
	}
	thread := m.comments.For(m.file.Path, line)
	if len(thread) == 0 {
		m.comment = nil
		return
	}

	width := max(min(m.width-4, maxOverlayWidth), 20)
	height := max(min(m.height-2, maxOverlayHeight), overlayChrome+1)
	bodyWidth := width - 4

	body := comments.Thread(thread)
	if md, err := markdown.New(bodyWidth, m.markdownStyle); err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer unavailable", err, "style", m.markdownStyle)
	} else {
		body = md.RenderOrPlain(body)
	}

	vp := viewport.New(bodyWidth, height-overlayChrome)
	vp.SetContent(body)
	m.comment = &commentOverlay{line: line, width: width, height: height, view: vp}
	log.Debug(log.CatUI, "opened comments", "path", m.file.Path, "line", line, "count", len(thread))
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Comments):
		m.comment = nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.comment.view.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.comment.view.ScrollUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.comment.view.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.comment.view.PageUp()
	}
	return m, nil
}
