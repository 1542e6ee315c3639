// Package file provides a message source backed by translation files on
// disk, laid out as <base>/<language>/<category>.<ext> with JSON, YAML, or
// TOML content. Files are loaded lazily on first use and cached; nested
// documents are flattened to dot-notation keys.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pgwireless/i18n"
)

func init() {
	i18n.RegisterSourceType("file", func(cfg i18n.SourceConfig) (i18n.Source, error) {
		path, _ := cfg.Options["path"].(string)
		if path == "" {
			return nil, fmt.Errorf("file source requires a path option")
		}
		lang, _ := cfg.Options["source_language"].(string)
		if lang == "" {
			lang = i18n.DefaultLanguage
		}
		return New(path, lang), nil
	})
}

// decoders maps supported file extensions to their unmarshal functions, in
// lookup order.
var decoders = []struct {
	ext       string
	unmarshal func([]byte, any) error
}{
	{".json", json.Unmarshal},
	{".yaml", func(data []byte, v any) error { return yaml.Unmarshal(data, v) }},
	{".yml", func(data []byte, v any) error { return yaml.Unmarshal(data, v) }},
	{".toml", toml.Unmarshal},
}

// Source reads translations from a directory tree. Each (language,
// category) table is loaded once and cached, including negative results for
// missing files, so repeated lookups never touch the filesystem again.
type Source struct {
	mu             sync.RWMutex
	tables         map[string]map[string]string
	basePath       string
	sourceLanguage string
}

// New creates a source rooted at basePath whose untranslated messages are
// written in sourceLanguage.
func New(basePath, sourceLanguage string) *Source {
	return &Source{
		tables:         make(map[string]map[string]string),
		basePath:       basePath,
		sourceLanguage: sourceLanguage,
	}
}

// Translate implements i18n.Source. A language with a region subtag falls
// back to its base tag when the regional file has no answer ("en-US" to
// "en").
func (s *Source) Translate(_ context.Context, category, key, language string) (string, bool) {
	if translation, ok := s.table(language, category)[key]; ok {
		return translation, true
	}
	if base, _, found := strings.Cut(language, "-"); found && base != "" {
		translation, ok := s.table(base, category)[key]
		return translation, ok
	}
	return "", false
}

// SourceLanguage implements i18n.Source.
func (s *Source) SourceLanguage() string {
	return s.sourceLanguage
}

// table returns the translation table for a (language, category) pair,
// loading it on first access. A missing or unreadable file caches as an
// empty table.
func (s *Source) table(language, category string) map[string]string {
	cacheKey := language + "\x00" + category

	s.mu.RLock()
	table, ok := s.tables[cacheKey]
	s.mu.RUnlock()
	if ok {
		return table
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if table, ok := s.tables[cacheKey]; ok {
		return table
	}

	table = s.load(language, category)
	s.tables[cacheKey] = table
	return table
}

func (s *Source) load(language, category string) map[string]string {
	base := filepath.Join(s.basePath, language, filepath.FromSlash(category))
	for _, dec := range decoders {
		data, err := os.ReadFile(base + dec.ext)
		if err != nil {
			continue
		}
		var doc map[string]any
		if err := dec.unmarshal(data, &doc); err != nil {
			continue
		}
		return flatten(doc, "")
	}
	return map[string]string{}
}

// flatten converts a nested document into dot-notation keys.
func flatten(doc map[string]any, prefix string) map[string]string {
	result := make(map[string]string, len(doc))
	for key, value := range doc {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flatten(v, fullKey))
		case map[string]string:
			for subKey, subValue := range v {
				result[fullKey+"."+subKey] = subValue
			}
		default:
			result[fullKey] = fmt.Sprint(v)
		}
	}
	return result
}
