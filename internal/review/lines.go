package review

import "github.com/zjrosen/mrdiff/internal/diff"

// NewLineForIndex translates a 1-based index into the new-side content of a
// diff (context and added lines, counted across hunks) into the line number
// in the new file. It returns -1 when the index is out of range.
func NewLineForIndex(diffText string, index int) int {
	if index < 1 {
		return -1
	}

	seen := 0
	newLine := 0
	for _, h := range diff.ParseHunks(diffText) {
		if header, ok := diff.ParseHeader(h.Header); ok {
			newLine = header.NewStart
		}
		for _, l := range h.Lines {
			if l.Kind == diff.KindRemoved {
				continue
			}
			seen++
			if seen == index {
				return newLine
			}
			newLine++
		}
	}
	return -1
}
