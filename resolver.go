package i18n

import (
	"fmt"
	"strings"
)

// binding pairs a category pattern with either a live source or the
// descriptor it will be realized from. Bindings are shared by pointer so
// realizing one under a wildcard pattern also realizes the memoized
// exact-category entry.
type binding struct {
	source Source
	config *SourceConfig
}

// Source resolves a category to its message source. Resolution order is
// strict: an exact pattern match, then the first registered prefix wildcard
// ("app*"), then the "*" catch-all. Wildcard ties are broken by registration
// order, not by prefix length; integrators relying on overlapping wildcards
// get the one they registered first.
//
// The first resolution of a category realizes its descriptor (at most once
// per binding) and memoizes the result under the exact category key, so
// repeated lookups skip the pattern scan entirely.
func (i *I18n) Source(category string) (Source, error) {
	i.mu.RLock()
	if b, ok := i.bindings[category]; ok && b.source != nil {
		src := b.source
		i.mu.RUnlock()
		return src, nil
	}
	i.mu.RUnlock()

	i.mu.Lock()
	defer i.mu.Unlock()
	return i.resolveLocked(category)
}

func (i *I18n) resolveLocked(category string) (Source, error) {
	// Recheck under the write lock: a concurrent resolution of the same
	// category may have realized and memoized the binding already.
	if b, ok := i.bindings[category]; ok {
		return i.realizeLocked(category, b)
	}

	for _, pattern := range i.order {
		if !isPrefixWildcard(pattern) {
			continue
		}
		if strings.HasPrefix(category, strings.TrimRight(pattern, "*")) {
			return i.realizeLocked(category, i.bindings[pattern])
		}
	}

	if b, ok := i.bindings["*"]; ok {
		return i.realizeLocked(category, b)
	}

	return nil, fmt.Errorf("%w: %q", ErrNoSource, category)
}

// realizeLocked converts the binding's descriptor into a live source if it
// still holds one and memoizes the binding under the exact category key.
// Callers must hold the write lock.
func (i *I18n) realizeLocked(category string, b *binding) (Source, error) {
	if b.source == nil {
		src, err := i.buildSource(*b.config)
		if err != nil {
			return nil, err
		}
		b.source = src
		b.config = nil
	}
	i.bindings[category] = b
	return b.source, nil
}

// isPrefixWildcard reports whether pattern matches categories by prefix.
// The '*' must not be the leading character; the lone "*" catch-all is
// handled separately and last.
func isPrefixWildcard(pattern string) bool {
	return strings.Index(pattern, "*") > 0
}

// register records a pattern binding. The first registration of a pattern
// fixes its position in the wildcard scan order; re-registering the same
// pattern replaces the binding but keeps the position.
func (i *I18n) register(pattern string, b *binding) {
	if _, exists := i.bindings[pattern]; !exists {
		i.order = append(i.order, pattern)
	}
	i.bindings[pattern] = b
}
