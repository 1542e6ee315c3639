// Package static provides an in-memory message source. It is the simplest
// Source implementation and the backbone of tests and embedded defaults.
package static

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/pgwireless/i18n"
)

func init() {
	i18n.RegisterSourceType("static", func(cfg i18n.SourceConfig) (i18n.Source, error) {
		lang, _ := cfg.Options["source_language"].(string)
		if lang == "" {
			return nil, fmt.Errorf("static source requires a source_language option")
		}
		src := New(lang)
		messages, _ := cfg.Options["messages"].(map[string]any)
		for category, byLanguage := range messages {
			langs, ok := byLanguage.(map[string]any)
			if !ok {
				continue
			}
			for language, byKey := range langs {
				keys, ok := byKey.(map[string]any)
				if !ok {
					continue
				}
				table := make(map[string]string, len(keys))
				for key, msg := range keys {
					table[key] = fmt.Sprint(msg)
				}
				src.Add(category, language, table)
			}
		}
		return src, nil
	})
}

// Source holds translations in a category -> language -> key table guarded
// by an RWMutex, so messages can be added while translations are served.
type Source struct {
	mu             sync.RWMutex
	messages       map[string]map[string]map[string]string
	sourceLanguage string
}

// New creates an empty source whose untranslated messages are written in
// sourceLanguage.
func New(sourceLanguage string) *Source {
	return &Source{
		messages:       make(map[string]map[string]map[string]string),
		sourceLanguage: sourceLanguage,
	}
}

// Add merges messages for a category and language. Existing keys are
// overwritten. It returns the source for chaining.
func (s *Source) Add(category, language string, messages map[string]string) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()

	byLanguage, ok := s.messages[category]
	if !ok {
		byLanguage = make(map[string]map[string]string)
		s.messages[category] = byLanguage
	}
	table, ok := byLanguage[language]
	if !ok {
		table = make(map[string]string, len(messages))
		byLanguage[language] = table
	}
	maps.Copy(table, messages)
	return s
}

// Translate implements i18n.Source.
func (s *Source) Translate(_ context.Context, category, key, language string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	translation, ok := s.messages[category][language][key]
	return translation, ok
}

// SourceLanguage implements i18n.Source.
func (s *Source) SourceLanguage() string {
	return s.sourceLanguage
}
