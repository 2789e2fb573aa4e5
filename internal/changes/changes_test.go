package changes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const gitlabPayload = `{
  "iid": 42,
  "changes": [
    {
      "old_path": "main.go",
      "new_path": "main.go",
      "diff": "@@ -1 +1 @@\n-a\n+b\n",
      "new_file": false,
      "renamed_file": false,
      "deleted_file": false
    },
    {
      "old_path": "old.py",
      "new_path": "new.py",
      "diff": "",
      "renamed_file": true
    }
  ]
}`

func TestParse_GitLabPayload(t *testing.T) {
	list, err := Parse([]byte(gitlabPayload))
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, FileChange{
		OldPath: "main.go",
		NewPath: "main.go",
		Diff:    "@@ -1 +1 @@\n-a\n+b\n",
	}, list[0])
	require.True(t, list[1].RenamedFile)
	require.Equal(t, "old.py → new.py", list[1].Title())
}

func TestParse_BareYAMLList(t *testing.T) {
	list, err := Parse([]byte(`
- old_path: a.txt
  new_path: a.txt
  diff: |
    @@ -1 +1 @@
    -x
    +y
`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "@@ -1 +1 @@\n-x\n+y\n", list[0].Diff)
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "[]", "changes: []", "iid: 1"} {
		_, err := Parse([]byte(in))
		require.ErrorIs(t, err, ErrNoChanges, "input %q", in)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("42"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoChanges)

	_, err = Parse([]byte("{unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.json")
	require.NoError(t, os.WriteFile(path, []byte(gitlabPayload), 0o600))

	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFileChange_PathAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		change FileChange
		path   string
		status string
	}{
		{"modified", FileChange{OldPath: "a", NewPath: "a"}, "a", "modified"},
		{"added", FileChange{OldPath: "a", NewPath: "a", NewFile: true}, "a", "added"},
		{"deleted", FileChange{OldPath: "gone.go", NewPath: "gone.go", DeletedFile: true}, "gone.go", "deleted"},
		{"renamed", FileChange{OldPath: "a", NewPath: "b", RenamedFile: true}, "b", "renamed"},
		{"old path only", FileChange{OldPath: "a"}, "a", "modified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.path, tt.change.Path())
			require.Equal(t, tt.status, tt.change.Status())
		})
	}
}
