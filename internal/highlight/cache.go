package highlight

import (
	"context"
	"fmt"

	"github.com/zjrosen/mrdiff/internal/cachemanager"
	"github.com/zjrosen/mrdiff/internal/log"
)

// grammarEntry is what the cache stores per language. A failed load is
// stored too so a missing grammar is looked up only once.
type grammarEntry struct {
	grammar Grammar
	err     error
}

// GrammarCache loads grammars lazily, one per language id, and keeps them for
// its own lifetime. Concurrent first lookups of a language share one load.
type GrammarCache struct {
	store  *cachemanager.InMemoryCacheManager[string, grammarEntry]
	reader *cachemanager.ReadThroughCache[string, grammarEntry, string]
}

// NewGrammarCache creates an empty cache in front of resolver.
func NewGrammarCache(resolver Resolver) *GrammarCache {
	store := cachemanager.NewInMemoryCacheManager[string, grammarEntry](
		"grammars", cachemanager.NoExpiration, cachemanager.NoCleanup)

	load := func(ctx context.Context, language string) (grammarEntry, error) {
		g, err := safeLoad(ctx, resolver, language)
		if err != nil {
			log.Debug(log.CatHighlight, "grammar unavailable", "language", language, "error", err.Error())
		} else {
			log.Debug(log.CatHighlight, "grammar loaded", "language", language)
		}
		return grammarEntry{grammar: g, err: err}, nil
	}

	return &GrammarCache{
		store:  store,
		reader: cachemanager.NewReadThroughCache[string, grammarEntry, string](store, load, false),
	}
}

// Get returns the grammar for language, loading it on first use.
func (c *GrammarCache) Get(ctx context.Context, language string) (Grammar, error) {
	entry, err := c.reader.Get(ctx, language, language, cachemanager.NoExpiration)
	if err != nil {
		return nil, err
	}
	return entry.grammar, entry.err
}

// Len returns the number of languages looked up so far, failures included.
func (c *GrammarCache) Len() int {
	return c.store.Len()
}

// safeLoad calls the resolver and turns a panic into an error.
func safeLoad(ctx context.Context, resolver Resolver, language string) (g Grammar, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("loading grammar %s panicked: %v", language, r)
		}
	}()

	g, err = resolver.Load(ctx, language)
	if err == nil && g == nil {
		err = fmt.Errorf("%w: %s", ErrNoGrammar, language)
	}
	return g, err
}
