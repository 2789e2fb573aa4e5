package review

import (
	"github.com/google/uuid"

	"github.com/zjrosen/mrdiff/internal/changes"
)

// DoneMessage is reported when moving past the last change.
const DoneMessage = "All diffs reviewed."

// Session is one pass over a list of file changes.
type Session struct {
	ID      string
	changes []changes.FileChange
	current int
}

// NewSession starts at the first change.
func NewSession(list []changes.FileChange) *Session {
	return &Session{ID: uuid.NewString(), changes: list}
}

// Len returns the number of changes.
func (s *Session) Len() int {
	return len(s.changes)
}

// Index returns the 0-based position of the current change.
func (s *Session) Index() int {
	return s.current
}

// Current returns the change under review. ok is false for an empty session.
func (s *Session) Current() (changes.FileChange, bool) {
	if len(s.changes) == 0 {
		return changes.FileChange{}, false
	}
	return s.changes[s.current], true
}

// Changes returns the full change list.
func (s *Session) Changes() []changes.FileChange {
	return s.changes
}

// Next advances to the next change. At the last change it stays put and
// reports false.
func (s *Session) Next() bool {
	if s.current >= len(s.changes)-1 {
		return false
	}
	s.current++
	return true
}

// Prev steps back. At the first change it stays put and reports false.
func (s *Session) Prev() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Goto jumps to the 0-based index i, clamped to the list, and reports
// whether the position changed.
func (s *Session) Goto(i int) bool {
	if len(s.changes) == 0 {
		return false
	}
	i = max(0, min(i, len(s.changes)-1))
	moved := i != s.current
	s.current = i
	return moved
}

// Replace swaps in a reloaded change list, keeping the position when the
// same path is still present and clamping otherwise.
func (s *Session) Replace(list []changes.FileChange) {
	var path string
	if c, ok := s.Current(); ok {
		path = c.Path()
	}
	s.changes = list
	for i, c := range list {
		if path != "" && c.Path() == path {
			s.current = i
			return
		}
	}
	s.current = max(0, min(s.current, len(list)-1))
}
