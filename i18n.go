package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pgwireless/i18n/icu"
)

// DefaultLanguage is the language code used when no default language is
// configured.
const DefaultLanguage = "en"

// I18n routes translation requests to message sources by category and
// formats the results. Sources are bound to category patterns at
// construction time; descriptors among them are realized lazily on first
// use. The instance is safe for concurrent use.
type I18n struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	order    []string

	fmtMu     sync.RWMutex
	formatter Formatter

	sourceTypes     map[string]SourceFactory
	defaultLanguage string
	missingHandler  func(language, category, key string)
	log             *slog.Logger
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		bindings:        make(map[string]*binding),
		sourceTypes:     make(map[string]SourceFactory),
		defaultLanguage: DefaultLanguage,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLanguage == "" {
		return nil, fmt.Errorf("default language cannot be empty")
	}

	return i, nil
}

// WithSource binds an already-constructed source to a category pattern.
// The pattern is an exact category name, a "prefix*" wildcard, or the "*"
// catch-all.
func WithSource(pattern string, src Source) Option {
	return func(i *I18n) error {
		if pattern == "" {
			return fmt.Errorf("category pattern cannot be empty")
		}
		if src == nil {
			return fmt.Errorf("source cannot be nil for pattern %q", pattern)
		}
		i.register(pattern, &binding{source: src})
		return nil
	}
}

// WithSourceConfig binds a source descriptor to a category pattern. The
// descriptor is realized through the source type registry on the first
// resolution that selects it.
func WithSourceConfig(pattern string, cfg SourceConfig) Option {
	return func(i *I18n) error {
		if pattern == "" {
			return fmt.Errorf("category pattern cannot be empty")
		}
		i.register(pattern, &binding{config: &cfg})
		return nil
	}
}

// WithSourceType registers a source factory visible only to this instance,
// shadowing the global registry for the given type tag.
func WithSourceType(name string, factory SourceFactory) Option {
	return func(i *I18n) error {
		if name == "" {
			return fmt.Errorf("source type tag cannot be empty")
		}
		if factory == nil {
			return fmt.Errorf("source factory cannot be nil")
		}
		i.sourceTypes[name] = factory
		return nil
	}
}

// WithDefaultLanguage sets the language used by Translator wrappers when the
// caller does not specify one.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return fmt.Errorf("language cannot be empty")
		}
		i.defaultLanguage = lang
		return nil
	}
}

// WithFormatter sets the formatter used for ICU-style messages, overriding
// the lazily constructed default.
func WithFormatter(f Formatter) Option {
	return func(i *I18n) error {
		if f == nil {
			return fmt.Errorf("formatter cannot be nil")
		}
		i.formatter = f
		return nil
	}
}

// WithMissingTranslationHandler sets a handler called whenever a source
// reports a miss for a requested key. Useful for logging untranslated keys
// during development.
func WithMissingTranslationHandler(handler func(language, category, key string)) Option {
	return func(i *I18n) error {
		i.missingHandler = handler
		return nil
	}
}

// WithLogger sets the logger used for degrade-gracefully events such as
// formatter failures. Without it those events are silent.
func WithLogger(log *slog.Logger) Option {
	return func(i *I18n) error {
		i.log = log
		return nil
	}
}

// Translate resolves the category to a source, looks up the translation of
// key for the given language, and formats it with params.
//
// A translation miss is not an error: the original key text is formatted
// using the source's own language, since untranslated text is assumed to be
// written in it and locale-sensitive formatting must follow suit. The only
// errors are a category with no matching binding and a descriptor that
// cannot be realized.
func (i *I18n) Translate(ctx context.Context, category, key string, params M, language string) (string, error) {
	src, err := i.Source(category)
	if err != nil {
		return "", err
	}

	if translation, ok := src.Translate(ctx, category, key, language); ok {
		return i.Format(translation, params, language), nil
	}

	if i.missingHandler != nil {
		i.missingHandler(language, category, key)
	}

	return i.Format(key, params, src.SourceLanguage()), nil
}

// DefaultLanguage returns the configured default language code.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLanguage
}

// Formatter returns the current formatter, constructing the default
// ICU-subset formatter on first use.
func (i *I18n) Formatter() Formatter {
	i.fmtMu.RLock()
	f := i.formatter
	i.fmtMu.RUnlock()
	if f != nil {
		return f
	}

	i.fmtMu.Lock()
	defer i.fmtMu.Unlock()
	if i.formatter == nil {
		i.formatter = icu.New()
	}
	return i.formatter
}

// SetFormatter replaces the formatter. It may be called at any time and
// takes effect on the next format call.
func (i *I18n) SetFormatter(f Formatter) {
	i.fmtMu.Lock()
	i.formatter = f
	i.fmtMu.Unlock()
}
