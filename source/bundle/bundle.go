// Package bundle provides a message source backed by a go-i18n bundle.
// Translation files carry one document per language (for example
// "active.es.toml") with message IDs namespaced by category, so existing
// go-i18n catalogs plug into the category-routing pipeline unchanged.
package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/pgwireless/i18n"
)

func init() {
	i18n.RegisterSourceType("bundle", func(cfg i18n.SourceConfig) (i18n.Source, error) {
		lang, _ := cfg.Options["source_language"].(string)
		if lang == "" {
			lang = i18n.DefaultLanguage
		}
		src, err := New(lang)
		if err != nil {
			return nil, err
		}
		path, _ := cfg.Options["path"].(string)
		if path == "" {
			return nil, fmt.Errorf("bundle source requires a path option")
		}
		if err := src.LoadDir(path); err != nil {
			return nil, err
		}
		return src, nil
	})
}

// Source wraps a go-i18n Bundle and serves (category, key) lookups as
// message IDs of the form "category.key". Localizers are created per
// language on demand and cached.
type Source struct {
	bundle         *goi18n.Bundle
	localizers     sync.Map // language string -> *goi18n.Localizer
	sourceLanguage string
}

// New creates a Source for the given source language. TOML, JSON, and YAML
// message files are supported.
func New(sourceLanguage string) (*Source, error) {
	tag, err := language.Parse(sourceLanguage)
	if err != nil {
		return nil, fmt.Errorf("invalid source language %q: %w", sourceLanguage, err)
	}

	b := goi18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	b.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	return &Source{
		bundle:         b,
		sourceLanguage: sourceLanguage,
	}, nil
}

// LoadFile loads one message file; the language is derived from the file
// name, go-i18n style ("active.es.toml").
func (s *Source) LoadFile(path string) error {
	if _, err := s.bundle.LoadMessageFile(path); err != nil {
		return fmt.Errorf("load message file %s: %w", path, err)
	}
	return nil
}

// LoadDir loads every message file directly under dir.
func (s *Source) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read message dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := s.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFS loads the named message files from fsys.
func (s *Source) LoadFS(fsys fs.FS, paths ...string) error {
	for _, path := range paths {
		if _, err := s.bundle.LoadMessageFileFS(fsys, path); err != nil {
			return fmt.Errorf("load message file %s: %w", path, err)
		}
	}
	return nil
}

// Translate implements i18n.Source. go-i18n applies its own language
// matching, so a key absent in the requested language but present in
// another loaded language is served by the bundle directly; only keys
// unknown to every loaded language report a miss.
func (s *Source) Translate(_ context.Context, category, key, language string) (string, bool) {
	localizer := s.localizer(language)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID: category + "." + key,
	})
	if err != nil {
		return "", false
	}
	return msg, true
}

// SourceLanguage implements i18n.Source.
func (s *Source) SourceLanguage() string {
	return s.sourceLanguage
}

func (s *Source) localizer(language string) *goi18n.Localizer {
	if l, ok := s.localizers.Load(language); ok {
		return l.(*goi18n.Localizer)
	}
	l := goi18n.NewLocalizer(s.bundle, language)
	s.localizers.Store(language, l)
	return l
}
