package reviewer

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/mrdiff/internal/changes"
	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/review"
)

// renderedMsg carries a finished render. seq ties it to the navigation
// event that requested it.
type renderedMsg struct {
	seq  int
	file review.RenderedFile
}

// reloadedMsg carries freshly loaded change and comment documents.
type reloadedMsg struct {
	changes  []changes.FileChange
	comments comments.Index
	err      error
}

var errNoChangesPath = errors.New("changes were not loaded from a file")

// renderCmd renders the session's current change off the update loop.
func (m Model) renderCmd() tea.Cmd {
	change, ok := m.session.Current()
	if !ok {
		return nil
	}
	seq := m.renderSeq
	r := m.renderer
	return func() tea.Msg {
		return renderedMsg{seq: seq, file: r.RenderFile(context.Background(), change)}
	}
}

// reloadCmd re-reads the change and comment documents.
func (m Model) reloadCmd() tea.Cmd {
	changesPath, commentsPath := m.changesPath, m.commentsPath
	return func() tea.Msg {
		if changesPath == "" {
			return reloadedMsg{err: errNoChangesPath}
		}
		list, err := changes.Load(changesPath)
		if err != nil {
			return reloadedMsg{err: err}
		}
		idx := comments.Index{}
		if commentsPath != "" {
			if idx, err = comments.Load(commentsPath); err != nil {
				return reloadedMsg{err: err}
			}
		}
		return reloadedMsg{changes: list, comments: idx}
	}
}
