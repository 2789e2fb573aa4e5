package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  foo.Bar(x, y);", "foo bar x y"},
		{"\tif (a && b) {", "if a b"},
		{`const x = "héllo";`, "const x hllo"},
		{"return a[i] + b[j]*2", "return a i b j 2"},
		{"", ""},
		{"   \t  ", ""},
		{"#include <stdio.h>", "include stdio h"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "hello world", "hello world", 100},
		{"token order ignored", "world hello", "hello world", 100},
		{"both empty", "", "", 100},
		{"one empty", "", "x", 0},
		{"other empty", "x", "", 0},
		{"rounds up", "b", "bb", 67},
		{"exactly threshold", "abcdefg", "abc", 60},
		{"just above threshold", "abcdefghijklmnopqrstuvwxy", "abcdefghijk", 61},
		{"nothing shared", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TokenSortRatio(tt.a, tt.b))
		})
	}
}

func TestSimilarity_IgnoresPunctuationAndCase(t *testing.T) {
	require.Equal(t, 100, Similarity("foo(bar);", "FOO bar"))
	require.Equal(t, 100, Similarity("x = y + z", "z + y = x"))
}

func TestTokenSortRatio_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "b")

		score := TokenSortRatio(a, b)
		require.GreaterOrEqual(t, score, 0)
		require.LessOrEqual(t, score, 100)
		require.Equal(t, score, TokenSortRatio(b, a), "score must be symmetric")
		require.Equal(t, 100, TokenSortRatio(a, a))
	})
}
