package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/mrdiff/internal/changes"
)

const sampleChanges = `[
  {"old_path": "a.go", "new_path": "a.go", "diff": "@@ -1,2 +1,2 @@\n package a\n-var x = 1\n+var x = 2\n"},
  {"old_path": "old.txt", "new_path": "new.txt", "renamed_file": true, "diff": "@@ -5,1 +5,1 @@\n-hello\n+hello world\n"}
]`

// execute runs the root command with args and returns its stdout. Flag
// globals and viper are reset first because both keep state between runs.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	profile := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	viper.Reset()
	cfgFile, debugFlag, noWatch = "", false, false
	changesFile, commentsFile = "changes.json", ""
	renderFilePath, renderIndex, renderWidth, renderColor = "", 0, 0, colorAuto
	for _, f := range []string{"file", "index", "width"} {
		if fl := renderCmd.Flags().Lookup(f); fl != nil {
			fl.Changed = false
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ============================================================================
// render
// ============================================================================

func TestRender_AllFilesPlain(t *testing.T) {
	path := writeFile(t, "changes.json", sampleChanges)

	out, err := execute(t, "", "render", "--changes", path, "--color", "never", "--width", "30",
		"--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	require.Contains(t, out, "a.go (modified) +0 -0 ~1\n")
	require.Contains(t, out, "old.txt → new.txt (renamed) +0 -0 ~1\n")
	require.Contains(t, out, "var x = 1")
	require.Contains(t, out, "var x = 2")
	require.Contains(t, out, "hello world")
	require.NotContains(t, out, "\x1b[", "never must not emit escape codes")
}

func TestRender_SelectByIndexFromStdin(t *testing.T) {
	out, err := execute(t, sampleChanges, "render", "--changes", "-", "--index", "2", "--color", "never",
		"--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	require.Contains(t, out, "new.txt")
	require.NotContains(t, out, "a.go")
}

func TestRender_InvalidColor(t *testing.T) {
	path := writeFile(t, "changes.json", sampleChanges)

	_, err := execute(t, "", "render", "--changes", path, "--color", "sometimes",
		"--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorContains(t, err, `invalid --color "sometimes"`)
}

func TestRender_InvalidConfigFails(t *testing.T) {
	path := writeFile(t, "changes.json", sampleChanges)
	cfgPath := writeFile(t, "config.yaml", "ui:\n  scroll_step: 0\n")

	_, err := execute(t, "", "render", "--changes", path, "--config", cfgPath)
	require.ErrorContains(t, err, "ui.scroll_step must be at least 1")
}

func TestSelectChanges(t *testing.T) {
	list := []changes.FileChange{
		{OldPath: "a.go", NewPath: "a.go"},
		{OldPath: "old.go", NewPath: "new.go", RenamedFile: true},
	}

	got, err := selectChanges(list, "", 0)
	require.NoError(t, err)
	require.Equal(t, list, got)

	got, err = selectChanges(list, "old.go", 0)
	require.NoError(t, err)
	require.Equal(t, list[1:], got)

	got, err = selectChanges(list, "", 1)
	require.NoError(t, err)
	require.Equal(t, list[:1], got)

	_, err = selectChanges(list, "missing.go", 0)
	require.ErrorContains(t, err, `no change for file "missing.go"`)

	_, err = selectChanges(list, "", 3)
	require.ErrorContains(t, err, "--index 3 out of range (1-2)")
}

func TestApplyColorMode(t *testing.T) {
	profile := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	styled, err := applyColorMode(colorAlways)
	require.NoError(t, err)
	require.True(t, styled)

	styled, err = applyColorMode(colorNever)
	require.NoError(t, err)
	require.False(t, styled)

	// auto follows the profile, which is ASCII after "never".
	styled, err = applyColorMode(colorAuto)
	require.NoError(t, err)
	require.False(t, styled)
}

// ============================================================================
// changes input
// ============================================================================

func TestLoadChanges_Stdin(t *testing.T) {
	list, err := loadChanges(stdinPath, strings.NewReader(sampleChanges))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "new.txt", list[1].Path())
}

func TestLoadChanges_StdinEmpty(t *testing.T) {
	_, err := loadChanges(stdinPath, strings.NewReader(""))
	require.ErrorIs(t, err, changes.ErrNoChanges)
	require.ErrorContains(t, err, "parsing changes from stdin")
}

func TestLoadChanges_MissingFile(t *testing.T) {
	_, err := loadChanges(filepath.Join(t.TempDir(), "nope.json"), nil)
	require.ErrorContains(t, err, "loading changes")
}

// ============================================================================
// languages / config
// ============================================================================

func TestLanguages_ListsTable(t *testing.T) {
	out, err := execute(t, "", "languages", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.True(t, strings.HasPrefix(lines[0], "LANGUAGE"))
	require.Contains(t, out, "go")
	require.Contains(t, out, "*.go")
	require.Contains(t, out, "Dockerfile")
}

func TestConfigInit_WritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	out, err := execute(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	require.Equal(t, "wrote "+path+"\n", out)
	require.FileExists(t, path)

	_, err = execute(t, "", "config", "init", "--config", path)
	require.ErrorContains(t, err, "already exists")
}

func TestConfigSet_UpdatesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "# viewer settings\nui:\n  scroll_step: 3\n")

	out, err := execute(t, "", "config", "set", "ui.scroll_step", "7", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "ui.scroll_step = 7")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# viewer settings")
	require.Contains(t, string(data), "scroll_step: 7")
}

func TestConfigPath_PrefersFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	out, err := execute(t, "", "config", "path", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path+"\n", out)
}
