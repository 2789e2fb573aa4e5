package review

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLineForIndex(t *testing.T) {
	text := "@@ -10,3 +10,4 @@\n a\n-b\n+bb\n+c\n@@ -40,1 +41,2 @@\n z\n+w\n"

	tests := []struct {
		index int
		want  int
	}{
		{1, 10}, // a
		{2, 11}, // bb
		{3, 12}, // c
		{4, 41}, // z, second hunk restarts numbering
		{5, 42}, // w
		{6, -1},
		{0, -1},
		{-2, -1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NewLineForIndex(text, tt.index), "index %d", tt.index)
	}
}

func TestNewLineForIndex_NoHunks(t *testing.T) {
	require.Equal(t, -1, NewLineForIndex("", 1))
	require.Equal(t, -1, NewLineForIndex("+++ b/file\n+line", 1))
}
