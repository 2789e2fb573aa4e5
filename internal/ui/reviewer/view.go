package reviewer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mrdiff/internal/ui/overlay"
	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPanes(),
		m.renderFooter(),
	)

	switch {
	case m.showHelp:
		view = m.help.Overlay(view)
	case m.comment != nil:
		view = overlay.Place(m.width, m.height, m.comment.View(), view)
	}
	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	if m.session.Len() == 0 {
		return styles.HeaderPathStyle.Render("No changes to review.")
	}

	current, _ := m.session.Current()
	counter := styles.HeaderCounterStyle.Render(fmt.Sprintf("Diff %d of %d", m.session.Index()+1, m.session.Len()))
	var stats string
	if m.file != nil && m.file.Path == current.Path() {
		s := m.file.Stats
		stats = styles.HeaderCounterStyle.Render(fmt.Sprintf("  +%d -%d ~%d", s.Added, s.Removed, s.Changed))
		if n := styles.FormatCommentCount(m.comments.Count(current.Path())); n != "" {
			stats += styles.HeaderCounterStyle.Render("  " + n)
		}
	}

	room := m.width - lipgloss.Width(counter) - lipgloss.Width(stats) - 2
	title := styles.HeaderPathStyle.Render(styles.TruncateString(current.Title(), room))
	return title + "  " + counter + stats
}

func (m Model) renderPanes() string {
	oldWidth, newWidth, height := m.paneSize()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.RenderWithTitleBorder(m.oldPane.View(), "Old", oldWidth, height, false),
		styles.RenderWithTitleBorder(m.newPane.View(), "New", newWidth, height, true),
	)
}

func (m Model) renderFooter() string {
	switch {
	case m.gotoMode:
		return styles.StatusBarStyle.Render(fmt.Sprintf("Go to file (1-%d): %s_", m.session.Len(), m.gotoInput))
	case m.statusErr:
		return styles.StatusBarStyle.Foreground(styles.StatusErrorColor).Render(m.status)
	case m.status != "":
		return styles.StatusBarStyle.Render(m.status)
	}
	return m.footer.View(m.keys)
}
