package highlight

import (
	"maps"
	"strings"
)

// Style is the visual treatment of a capture category.
type Style struct {
	Foreground string // "#rrggbb", empty for the terminal default
	Bold       bool
	Italic     bool
}

// StyleTable maps capture categories such as "function.method" to styles.
type StyleTable map[string]Style

// Gruvbox dark palette.
const (
	gruvRed    = "#fb4934"
	gruvYellow = "#fabd2f"
	gruvGreen  = "#b8bb26"
	gruvAqua   = "#8ec07c"
	gruvBlue   = "#83a598"
	gruvPurple = "#d3869b"
	gruvOrange = "#fe8019"
	gruvFg     = "#ebdbb2"
	gruvGrey   = "#928374"
)

var defaultStyles = StyleTable{
	"keyword":               {Foreground: gruvRed, Bold: true},
	"keyword.import":        {Foreground: gruvRed, Bold: true},
	"keyword.return":        {Foreground: gruvRed, Bold: true},
	"keyword.operator":      {Foreground: gruvRed},
	"keyword.type":          {Foreground: gruvYellow, Bold: true},
	"function":              {Foreground: gruvGreen},
	"function.def":          {Foreground: gruvGreen, Bold: true},
	"function.method":       {Foreground: gruvGreen},
	"function.method.call":  {Foreground: gruvGreen},
	"function.call":         {Foreground: gruvGreen},
	"function.builtin":      {Foreground: gruvAqua},
	"method":                {Foreground: gruvGreen},
	"method.call":           {Foreground: gruvGreen},
	"variable":              {Foreground: gruvFg},
	"variable.parameter":    {Foreground: gruvPurple},
	"variable.builtin":      {Foreground: gruvOrange},
	"type":                  {Foreground: gruvYellow},
	"type.builtin":          {Foreground: gruvYellow, Bold: true},
	"constructor":           {Foreground: gruvYellow},
	"constant":              {Foreground: gruvPurple, Bold: true},
	"constant.builtin":      {Foreground: gruvPurple, Bold: true},
	"string":                {Foreground: gruvGreen},
	"string.special":        {Foreground: gruvAqua},
	"string.escape":         {Foreground: gruvAqua},
	"number":                {Foreground: gruvPurple},
	"float":                 {Foreground: gruvPurple},
	"comment":               {Foreground: gruvGrey, Italic: true},
	"operator":              {Foreground: gruvFg},
	"punctuation":           {Foreground: gruvFg},
	"punctuation.bracket":   {Foreground: gruvFg},
	"punctuation.delimiter": {Foreground: gruvFg},
	"attribute":             {Foreground: gruvAqua},
	"tag":                   {Foreground: gruvBlue},
	"namespace":             {Foreground: gruvYellow},
	"label":                 {Foreground: gruvRed},
	"property":              {Foreground: gruvAqua},
}

// DefaultStyles returns a copy of the gruvbox dark capture table.
func DefaultStyles() StyleTable {
	return maps.Clone(defaultStyles)
}

// Resolve looks up a category, falling back to ever shorter dot prefixes:
// "function.method.call" → "function.method" → "function".
func (t StyleTable) Resolve(category string) (Style, bool) {
	for category != "" {
		if s, ok := t[category]; ok {
			return s, true
		}
		i := strings.LastIndexByte(category, '.')
		if i < 0 {
			break
		}
		category = category[:i]
	}
	return Style{}, false
}

// WithForegrounds returns a copy of t with foreground colours replaced or
// added from overrides (category → "#rrggbb"). Bold and italic are kept.
func (t StyleTable) WithForegrounds(overrides map[string]string) StyleTable {
	out := maps.Clone(t)
	if out == nil {
		out = StyleTable{}
	}
	for category, color := range overrides {
		s := out[category]
		s.Foreground = color
		out[category] = s
	}
	return out
}
