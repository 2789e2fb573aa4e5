// Package comments indexes existing review comments by file and new-side
// line number.
package comments

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Comment is a single review comment.
type Comment struct {
	Author string `yaml:"author" json:"author"`
	Body   string `yaml:"body" json:"body"`
}

// Key locates a comment: file path and line number in the new file.
type Key struct {
	Path string
	Line int
}

// Lookup answers whether a line has comments.
type Lookup interface {
	Has(path string, line int) bool
}

// Index holds comments grouped by Key. The zero value is an empty index.
type Index map[Key][]Comment

// Has reports whether any comment is attached to (path, line).
func (idx Index) Has(path string, line int) bool {
	return len(idx[Key{Path: path, Line: line}]) > 0
}

// For returns the comments attached to (path, line) in document order.
func (idx Index) For(path string, line int) []Comment {
	return idx[Key{Path: path, Line: line}]
}

// Add appends a comment to (path, line).
func (idx Index) Add(path string, line int, c Comment) {
	k := Key{Path: path, Line: line}
	idx[k] = append(idx[k], c)
}

// Lines returns the commented line numbers of a file in ascending order.
func (idx Index) Lines(path string) []int {
	var lines []int
	for k, cs := range idx {
		if k.Path == path && len(cs) > 0 {
			lines = append(lines, k.Line)
		}
	}
	slices.Sort(lines)
	return lines
}

// Count returns how many comments a file has.
func (idx Index) Count(path string) int {
	n := 0
	for k, cs := range idx {
		if k.Path == path {
			n += len(cs)
		}
	}
	return n
}

// Thread renders comments as "author: body" entries separated by "---" lines.
func Thread(cs []Comment) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("**%s:** %s", c.Author, c.Body)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// entry is one record of a comments document.
type entry struct {
	Path   string `yaml:"path"`
	Line   int    `yaml:"line"`
	Author string `yaml:"author"`
	Body   string `yaml:"body"`
}

// document accepts either a bare list or a top-level "comments:" key.
type document struct {
	Comments []entry `yaml:"comments"`
}

// Load reads a YAML or JSON list of {path, line, author, body} records.
// A missing file yields an empty index.
func Load(path string) (Index, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --comments flag
	if errors.Is(err, os.ErrNotExist) {
		return Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading comments: %w", err)
	}
	return Parse(data)
}

// Parse decodes a comments document.
func Parse(data []byte) (Index, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}

	var entries []entry
	if len(node.Content) > 0 {
		root := node.Content[0]
		switch root.Kind {
		case yaml.SequenceNode:
			if err := root.Decode(&entries); err != nil {
				return nil, fmt.Errorf("parsing comments: %w", err)
			}
		case yaml.MappingNode:
			var doc document
			if err := root.Decode(&doc); err != nil {
				return nil, fmt.Errorf("parsing comments: %w", err)
			}
			entries = doc.Comments
		default:
			return nil, fmt.Errorf("parsing comments: expected a list or a mapping")
		}
	}

	idx := Index{}
	for i, e := range entries {
		if e.Path == "" || e.Line <= 0 {
			return nil, fmt.Errorf("comment %d: path and a positive line are required", i)
		}
		idx.Add(e.Path, e.Line, Comment{Author: e.Author, Body: e.Body})
	}
	return idx, nil
}
