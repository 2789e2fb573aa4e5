// Package changes loads the per-file change records of a merge request.
package changes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoChanges is returned when a document contains no file changes.
var ErrNoChanges = errors.New("no changes found")

// FileChange is one file of a merge request as reported by the hosting
// service. Diff holds the unified diff body for the file.
type FileChange struct {
	OldPath     string `yaml:"old_path" json:"old_path"`
	NewPath     string `yaml:"new_path" json:"new_path"`
	Diff        string `yaml:"diff" json:"diff"`
	NewFile     bool   `yaml:"new_file" json:"new_file"`
	RenamedFile bool   `yaml:"renamed_file" json:"renamed_file"`
	DeletedFile bool   `yaml:"deleted_file" json:"deleted_file"`
}

// Path returns the path used for display, highlighting and comments.
// Deleted files only carry a meaningful old path.
func (c FileChange) Path() string {
	if c.NewPath == "" || (c.DeletedFile && c.OldPath != "") {
		return c.OldPath
	}
	return c.NewPath
}

// Status returns a short label for the change kind.
func (c FileChange) Status() string {
	switch {
	case c.NewFile:
		return "added"
	case c.DeletedFile:
		return "deleted"
	case c.RenamedFile:
		return "renamed"
	default:
		return "modified"
	}
}

// Title returns the header label. Renames show both paths.
func (c FileChange) Title() string {
	if c.RenamedFile && c.OldPath != "" && c.OldPath != c.NewPath {
		return c.OldPath + " → " + c.NewPath
	}
	return c.Path()
}

// document is the GitLab merge request changes payload.
type document struct {
	Changes []FileChange `yaml:"changes"`
}

// Load reads a YAML or JSON changes document from disk.
func Load(path string) ([]FileChange, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading changes: %w", err)
	}
	return Parse(data)
}

// Parse decodes either a bare list of changes or a mapping with a top-level
// "changes" key.
func Parse(data []byte) ([]FileChange, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing changes: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, ErrNoChanges
	}

	var list []FileChange
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("parsing changes: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing changes: %w", err)
		}
		list = doc.Changes
	default:
		return nil, fmt.Errorf("parsing changes: expected a list or a mapping")
	}

	if len(list) == 0 {
		return nil, ErrNoChanges
	}
	return list, nil
}
