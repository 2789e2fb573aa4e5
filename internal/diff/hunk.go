// Package diff parses unified-diff hunks and aligns them into paired
// old/new display rows.
package diff

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/zjrosen/mrdiff/internal/log"
)

// LineKind is the prefix character of a hunk body line.
type LineKind byte

const (
	KindContext LineKind = ' ' // unchanged line
	KindAdded   LineKind = '+' // line only in the new file
	KindRemoved LineKind = '-' // line only in the old file
)

// String returns a human-readable name for the line kind.
func (k LineKind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Line is a single body line of a hunk with its prefix stripped.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is one @@ block of a unified diff.
type Hunk struct {
	Header string // The @@ line text, verbatim
	Lines  []Line
}

// HunkHeader holds the numeric fields of a hunk header.
type HunkHeader struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
}

// ParseHunks splits raw diff text into hunks.
//
// A line starting with "@@" opens a new hunk; lines starting with '-', '+'
// or ' ' are appended to the current hunk. Everything else, including any
// preamble before the first "@@", is ignored. Invalid UTF-8 is replaced
// byte-by-byte with U+FFFD so highlight offsets stay consistent.
func ParseHunks(text string) []Hunk {
	if text == "" {
		return nil
	}
	text = repairUTF8(text)

	var hunks []Hunk
	var current *Hunk

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "@@") {
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &Hunk{Header: line}
			continue
		}

		if current == nil || line == "" {
			continue
		}

		switch LineKind(line[0]) {
		case KindContext, KindAdded, KindRemoved:
			current.Lines = append(current.Lines, Line{
				Kind:    LineKind(line[0]),
				Content: line[1:],
			})
		default:
			// "\ No newline at end of file" and anything unexpected
			continue
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}

	log.Debug(log.CatDiff, "parsed hunks", "count", len(hunks))
	return hunks
}

// ParseHeader reads the start lines and counts from a hunk header such as
// "@@ -10,3 +10,4 @@ func main()".
//
// ok is false when the header has fewer than three space-separated fields; the
// caller should then keep whatever line counters it already has. A field that
// is present but not numeric yields 0 for that side. Start values are taken
// as absolute values so the leading '-' of the old range does not matter.
func ParseHeader(header string) (HunkHeader, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 3 {
		return HunkHeader{}, false
	}

	var h HunkHeader
	h.OldStart, h.OldCount = parseRange(parts[1])
	h.NewStart, h.NewCount = parseRange(parts[2])
	return h, true
}

// parseRange parses "-10,3" or "+7" into (start, count). A missing count
// defaults to 1, per the unified diff format.
func parseRange(field string) (start, count int) {
	startField, countField, hasCount := strings.Cut(field, ",")

	n, err := strconv.Atoi(startField)
	if err != nil {
		log.Debug(log.CatDiff, "malformed hunk range", "field", field)
		return 0, 0
	}
	start = abs(n)

	count = 1
	if hasCount {
		c, err := strconv.Atoi(countField)
		if err != nil {
			return start, 0
		}
		count = abs(c)
	}
	return start, count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// repairUTF8 replaces every invalid byte with U+FFFD.
func repairUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	repaired, err := unicode.UTF8.NewDecoder().String(text)
	if err != nil {
		log.Debug(log.CatDiff, "utf8 repair failed, using fallback", "error", err.Error())
		return strings.ToValidUTF8(text, "�")
	}
	return repaired
}
