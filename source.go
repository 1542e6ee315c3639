package i18n

import (
	"context"
	"fmt"
	"sync"
)

// Source looks up translated strings for a (category, key, language) triple.
// Implementations decide where translations live (memory, files, database)
// and report misses through the boolean return instead of an error.
type Source interface {
	// Translate returns the translation of key within category for the given
	// language, or ok=false when no translation exists.
	Translate(ctx context.Context, category, key, language string) (string, bool)

	// SourceLanguage returns the language the untranslated messages are
	// written in. It is used as the formatting language when a translation
	// is missing.
	SourceLanguage() string
}

// Formatter substitutes named parameters into a message template for a
// target language. Implementations may support ICU-style plural and select
// syntax; a formatting failure is reported as an error and the pipeline
// falls back to the unformatted message.
type Formatter interface {
	Format(template string, params map[string]any, language string) (string, error)
}

// SourceConfig is an inert descriptor for a Source that has not been
// constructed yet. Type names a registered source factory; Options carries
// the factory-specific settings and is never interpreted by this package.
type SourceConfig struct {
	Type    string         `yaml:"type" json:"type"`
	Options map[string]any `yaml:"options" json:"options"`
}

// SourceFactory constructs a Source from its descriptor.
type SourceFactory func(cfg SourceConfig) (Source, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]SourceFactory)
)

// RegisterSourceType makes a source factory available under the given type
// tag for descriptor realization. It follows the database/sql driver
// registration convention: source packages register themselves from init,
// and registering a nil factory or a duplicate tag panics.
func RegisterSourceType(name string, factory SourceFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if factory == nil {
		panic("i18n: RegisterSourceType factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("i18n: RegisterSourceType called twice for type " + name)
	}
	factories[name] = factory
}

// SourceTypes returns the registered source type tags, for diagnostics.
func SourceTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// buildSource realizes a descriptor into a live Source. Per-instance
// factories registered with WithSourceType shadow the global registry.
func (i *I18n) buildSource(cfg SourceConfig) (Source, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("%w: missing type tag", ErrInvalidDescriptor)
	}

	factory, ok := i.sourceTypes[cfg.Type]
	if !ok {
		factoriesMu.RLock()
		factory, ok = factories[cfg.Type]
		factoriesMu.RUnlock()
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidDescriptor, cfg.Type)
	}

	src, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDescriptor, cfg.Type, err)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %q: factory returned no source", ErrInvalidDescriptor, cfg.Type)
	}
	return src, nil
}
