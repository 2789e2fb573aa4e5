package highlight

import (
	"context"
	"errors"
)

// ErrNoGrammar is returned by a Resolver that has nothing for a language.
var ErrNoGrammar = errors.New("no grammar for language")

// Capture marks a byte range of a parsed buffer with a category name.
type Capture struct {
	Start    int
	End      int
	Category string
}

// Grammar parses a whole buffer and reports the captured ranges. Offsets are
// byte offsets into src.
type Grammar interface {
	Captures(src []byte) ([]Capture, error)
}

// Resolver loads the grammar for a language id.
type Resolver interface {
	Load(ctx context.Context, language string) (Grammar, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, language string) (Grammar, error)

// Load calls f.
func (f ResolverFunc) Load(ctx context.Context, language string) (Grammar, error) {
	return f(ctx, language)
}
