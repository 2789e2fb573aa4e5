package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRenderWithTitleBorder_Basic(t *testing.T) {
	result := ansi.Strip(RenderWithTitleBorder("content", "Old", 20, 5, false))

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "╭─ Old "))
	require.True(t, strings.HasSuffix(lines[0], "╮"))
	require.Equal(t, "│content           │", lines[1])
	require.Equal(t, "╰"+strings.Repeat("─", 18)+"╯", lines[4])
}

func TestRenderWithTitleBorder_EveryLineHasWidth(t *testing.T) {
	content := "short\n" + strings.Repeat("x", 50) + "\nwide 日本語"
	result := RenderWithTitleBorder(content, "New", 24, 6, true)

	for i, line := range strings.Split(result, "\n") {
		require.Equal(t, 24, lipgloss.Width(line), "line %d", i)
	}
}

func TestRenderWithTitleBorder_LongTitle(t *testing.T) {
	result := ansi.Strip(RenderWithTitleBorder("", "a/very/long/path/that/does/not/fit.go", 20, 3, false))

	top := strings.Split(result, "\n")[0]
	require.Equal(t, 20, lipgloss.Width(top))
	require.Contains(t, top, "...")
}

func TestRenderWithTitleBorder_TooNarrowForTitle(t *testing.T) {
	result := ansi.Strip(RenderWithTitleBorder("", "Title", 4, 3, false))
	require.Equal(t, "╭──╮", strings.Split(result, "\n")[0])
}
