package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCommentCount(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected string
	}{
		{"zero comments", 0, ""},
		{"negative count", -1, ""},
		{"one comment", 1, "1 comment"},
		{"few comments", 3, "3 comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatCommentCount(tt.count))
		})
	}
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "", TruncateString("abc", 0))
	require.Equal(t, "abc", TruncateString("abc", 3))
	require.Equal(t, "..", TruncateString("abcdef", 2))
	require.Equal(t, "ab...", TruncateString("abcdefgh", 5))
	require.Equal(t, "日本...", TruncateString("日本語テキスト", 8))
	// "e" + combining acute is one cell and is never split.
	require.Equal(t, "e\u0301x...", TruncateString("e\u0301xyzwv", 5))
}
