// Package reviewer is the interactive side-by-side diff viewer.
package reviewer

import (
	"fmt"
	"strconv"
	"strings"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/keys"
	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/pubsub"
	"github.com/zjrosen/mrdiff/internal/review"
	"github.com/zjrosen/mrdiff/internal/ui/help"
	"github.com/zjrosen/mrdiff/internal/watcher"
)

const (
	headerHeight = 1
	footerHeight = 1

	defaultScrollStep = 3
)

// Config wires the viewer to the review pipeline.
type Config struct {
	Renderer *review.Renderer
	Session  *review.Session
	Comments comments.Index

	// ChangesPath and CommentsPath are re-read on reload. An empty
	// ChangesPath disables reloading.
	ChangesPath  string
	CommentsPath string

	// Events delivers watcher notifications. Nil when watching is off.
	Events *pubsub.Listener[watcher.Event]

	ScrollStep    int
	MarkdownStyle string
}

// Model is the viewer state.
type Model struct {
	renderer *review.Renderer
	session  *review.Session
	comments comments.Index

	changesPath  string
	commentsPath string
	events       *pubsub.Listener[watcher.Event]

	keys   keys.KeyMap
	help   help.Model
	footer bhelp.Model

	// Both panes always share offset.
	oldPane    viewport.Model
	newPane    viewport.Model
	offset     int
	scrollStep int

	file      *review.RenderedFile
	renderSeq int

	comment       *commentOverlay
	markdownStyle string

	showHelp  bool
	gotoMode  bool
	gotoInput string
	status    string
	statusErr bool

	width  int
	height int
}

// New creates the viewer. Comment indicators of cfg.Renderer become
// clickable zones.
func New(cfg Config) Model {
	step := cfg.ScrollStep
	if step <= 0 {
		step = defaultScrollStep
	}
	idx := cfg.Comments
	if idx == nil {
		idx = comments.Index{}
	}

	cfg.Renderer.Rows().SetIndicatorMarker(func(line int, s string) string {
		return zone.Mark(commentZoneID(line), s)
	})

	km := keys.DefaultKeyMap()
	return Model{
		renderer:      cfg.Renderer,
		session:       cfg.Session,
		comments:      idx,
		changesPath:   cfg.ChangesPath,
		commentsPath:  cfg.CommentsPath,
		events:        cfg.Events,
		keys:          km,
		help:          help.New(km),
		footer:        bhelp.New(),
		oldPane:       viewport.New(0, 0),
		newPane:       viewport.New(0, 0),
		scrollStep:    step,
		markdownStyle: cfg.MarkdownStyle,
		renderSeq:     1,
	}
}

func commentZoneID(line int) string {
	return "comment-" + strconv.Itoa(line)
}

// Init renders the first file and starts listening for watcher events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.renderCmd()}
	if m.events != nil {
		cmds = append(cmds, m.events.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.footer.Width = msg.Width
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.refreshPanes()
		if m.comment != nil {
			m.openComments(m.comment.line)
		}
		return m, nil

	case renderedMsg:
		if msg.seq != m.renderSeq {
			log.Debug(log.CatUI, "discarding stale render", "path", msg.file.Path, "seq", msg.seq, "want", m.renderSeq)
			return m, nil
		}
		sameFile := m.file != nil && m.file.Path == msg.file.Path
		file := msg.file
		m.file = &file
		if !sameFile {
			m.offset = 0
		}
		m.refreshPanes()
		return m, nil

	case reloadedMsg:
		return m.handleReloaded(msg)

	case pubsub.Event[watcher.Event]:
		log.Info(log.CatUI, "changes file updated, reloading", "path", msg.Payload.Path)
		return m, tea.Batch(m.reloadCmd(), m.events.Listen())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case m.comment != nil:
		return m.handleCommentKey(msg)
	case m.showHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case m.gotoMode:
		return m.handleGotoKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.scroll(m.scrollStep)
	case key.Matches(msg, m.keys.Up):
		m.scroll(-m.scrollStep)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(max(m.newPane.Height, 1))
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-max(m.newPane.Height, 1))
	case key.Matches(msg, m.keys.Top):
		m.setOffset(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setOffset(m.maxOffset())
	case key.Matches(msg, m.keys.NextFile):
		m.clearStatus()
		if !m.session.Next() {
			m.status = review.DoneMessage
			return m, nil
		}
		return m, m.startRender()
	case key.Matches(msg, m.keys.PrevFile):
		m.clearStatus()
		if !m.session.Prev() {
			return m, nil
		}
		return m, m.startRender()
	case key.Matches(msg, m.keys.GotoFile):
		m.clearStatus()
		m.gotoMode = true
		m.gotoInput = ""
	case key.Matches(msg, m.keys.Comments):
		m.clearStatus()
		line, ok := m.firstCommentInView()
		if !ok {
			m.status = "No comments in view."
			return m, nil
		}
		m.openComments(line)
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Escape):
		m.clearStatus()
	}
	return m, nil
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.gotoMode = false
		m.gotoInput = ""
	case tea.KeyBackspace:
		if m.gotoInput != "" {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
	case tea.KeyEnter:
		input := m.gotoInput
		m.gotoMode = false
		m.gotoInput = ""
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > m.session.Len() {
			m.setError(fmt.Sprintf("No file %q (1-%d)", input, m.session.Len()))
			return m, nil
		}
		if m.session.Goto(n - 1) {
			return m, m.startRender()
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				m.gotoInput += string(r)
			}
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.comment != nil {
			m.comment.view.ScrollDown(m.scrollStep)
		} else {
			m.scroll(m.scrollStep)
		}
	case tea.MouseButtonWheelUp:
		if m.comment != nil {
			m.comment.view.ScrollUp(m.scrollStep)
		} else {
			m.scroll(-m.scrollStep)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease || m.file == nil || m.comment != nil || m.showHelp {
			return m, nil
		}
		for _, line := range m.comments.Lines(m.file.Path) {
			if z := zone.Get(commentZoneID(line)); z != nil && z.InBounds(msg) {
				m.clearStatus()
				m.openComments(line)
				break
			}
		}
	}
	return m, nil
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatUI, "reload failed", msg.err, "path", m.changesPath)
		m.setError("Reload failed: " + msg.err.Error())
		return m, nil
	}
	m.session.Replace(msg.changes)
	m.comments = msg.comments
	m.renderer = m.renderer.WithComments(msg.comments)
	m.comment = nil
	m.status = fmt.Sprintf("Reloaded %d files.", len(msg.changes))
	m.statusErr = false
	return m, m.startRender()
}

// startRender bumps the render sequence so any render still in flight is
// discarded when it arrives.
func (m *Model) startRender() tea.Cmd {
	m.renderSeq++
	return m.renderCmd()
}

func (m *Model) scroll(delta int) {
	m.setOffset(m.offset + delta)
}

func (m *Model) setOffset(off int) {
	m.offset = max(0, min(off, m.maxOffset()))
	m.oldPane.SetYOffset(m.offset)
	m.newPane.SetYOffset(m.offset)
}

func (m Model) maxOffset() int {
	if m.file == nil {
		return 0
	}
	return max(len(m.file.New)-m.newPane.Height, 0)
}

// paneSize returns the outer width of each pane and their shared height.
func (m Model) paneSize() (oldWidth, newWidth, height int) {
	oldWidth = m.width / 2
	newWidth = m.width - oldWidth
	height = max(m.height-headerHeight-footerHeight, 3)
	return oldWidth, newWidth, height
}

// refreshPanes restyles the current file for the pane sizes and restores
// the shared offset.
func (m *Model) refreshPanes() {
	oldWidth, newWidth, height := m.paneSize()
	m.oldPane.Width, m.oldPane.Height = max(oldWidth-2, 1), height-2
	m.newPane.Width, m.newPane.Height = max(newWidth-2, 1), height-2

	if m.file == nil {
		m.oldPane.SetContent("")
		m.newPane.SetContent("")
		return
	}
	rows := m.renderer.Rows()
	m.oldPane.SetContent(strings.Join(rows.StyleLines(m.file.Old, m.oldPane.Width), "\n"))
	m.newPane.SetContent(strings.Join(rows.StyleLines(m.file.New, m.newPane.Width), "\n"))
	m.setOffset(m.offset)
}

// firstCommentInView returns the first new-side line with comments among
// the visible rows.
func (m Model) firstCommentInView() (int, bool) {
	if m.file == nil {
		return 0, false
	}
	end := min(m.offset+m.newPane.Height, len(m.file.New))
	for _, l := range m.file.New[m.offset:end] {
		if l.HasComments() {
			return l.Number, true
		}
	}
	return 0, false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// Offset returns the shared scroll offset of both panes.
func (m Model) Offset() int {
	return m.offset
}

// Session returns the review session driven by the viewer.
func (m Model) Session() *review.Session {
	return m.session
}
