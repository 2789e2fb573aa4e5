package highlight

import (
	"path/filepath"
	"sort"
	"strings"
)

// extLanguages maps a lowercase file extension to a language id. Ids are
// names or aliases the chroma lexer registry understands.
var extLanguages = map[string]string{
	// C / C++
	".c":   "cpp",
	".cc":  "cpp",
	".cpp": "cpp",
	".cxx": "cpp",
	".h":   "cpp",
	".hpp": "cpp",
	".hxx": "cpp",

	".py":  "python",
	".sql": "sql",

	".json": "json",
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",

	".md":  "markdown",
	".mdx": "markdown",

	// Shells
	".sh":   "bash",
	".bash": "bash",
	".zsh":  "bash",
	".fish": "bash",

	".go": "go",
	".rs": "rust",

	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".jsx": "jsx",
	".ts":  "typescript",
	".tsx": "tsx",

	".java": "java",
	".rb":   "ruby",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".lua":  "lua",
	".nix":  "nix",
}

// LanguageForPath returns the language id for a file path, or "" when the
// file type is unknown.
func LanguageForPath(path string) string {
	if path == "" {
		return ""
	}

	base := filepath.Base(path)
	switch {
	case base == "Dockerfile" || strings.HasPrefix(base, "Dockerfile."):
		return "dockerfile"
	case base == "Makefile" || base == "GNUmakefile":
		return "make"
	}

	return extLanguages[strings.ToLower(filepath.Ext(base))]
}

// LanguageMapping is one row of the extension table.
type LanguageMapping struct {
	Pattern  string
	Language string
}

// Languages lists every known mapping sorted by pattern, file name rules last.
func Languages() []LanguageMapping {
	mappings := make([]LanguageMapping, 0, len(extLanguages)+4)
	for ext, lang := range extLanguages {
		mappings = append(mappings, LanguageMapping{Pattern: "*" + ext, Language: lang})
	}
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].Pattern < mappings[j].Pattern
	})

	return append(mappings,
		LanguageMapping{Pattern: "Dockerfile", Language: "dockerfile"},
		LanguageMapping{Pattern: "Dockerfile.*", Language: "dockerfile"},
		LanguageMapping{Pattern: "Makefile", Language: "make"},
		LanguageMapping{Pattern: "GNUmakefile", Language: "make"},
	)
}
