package diff

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// PairThreshold is the similarity score a removed/added line pair must exceed
// to be shown side by side as a change. A score equal to the threshold does
// not pair.
const PairThreshold = 60

var (
	// Language punctuation that separates tokens; replaced by spaces.
	punctuationRegex = regexp.MustCompile(`[;(){}\[\].,:=+\-*/%&|^!~<>]`)
	// Anything left that is not a lowercase letter, digit or whitespace.
	residueRegex     = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// Normalize prepares a line of code for similarity comparison: it lowercases,
// turns punctuation into token breaks, drops remaining symbols and collapses
// whitespace.
//
// Example: "  foo.Bar(x, y);" → "foo bar x y"
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctuationRegex.ReplaceAllString(s, " ")
	s = residueRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TokenSortRatio scores two strings in [0,100] after sorting their
// whitespace-separated tokens, so token order does not matter.
//
// The score is 100·(lenA+lenB−d)/(lenA+lenB) rounded half-to-even, where d is
// the insert/delete edit distance between the sorted strings. Identical
// strings score 100 (including two empty strings); otherwise an empty side
// scores 0.
func TokenSortRatio(a, b string) int {
	a = sortTokens(a)
	b = sortTokens(b)

	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	dist := indelDistance(a, b)
	return int(math.RoundToEven(100 * float64(total-dist) / float64(total)))
}

// Similarity is TokenSortRatio over the normalized forms of two lines.
func Similarity(removed, added string) int {
	return TokenSortRatio(Normalize(removed), Normalize(added))
}

// sortTokens splits on whitespace, sorts and rejoins with single spaces.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// indelDistance counts the runes inserted or deleted by a minimal diff from a
// to b. With DiffTimeout disabled diffmatchpatch runs Myers' bisection to
// completion, which yields a shortest edit script.
func indelDistance(a, b string) int {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	dist := 0
	for _, d := range dmp.DiffMain(a, b, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			dist += utf8.RuneCountInString(d.Text)
		}
	}
	return dist
}
