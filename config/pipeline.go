package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pgwireless/i18n"
)

// Pipeline is the YAML shape of a translation pipeline. Sources is an
// ordered list because wildcard patterns resolve in registration order;
// a YAML mapping would lose that ordering.
//
//	default_language: en
//	sources:
//	  - pattern: "app*"
//	    type: file
//	    options:
//	      path: ./locales
//	      source_language: en
//	  - pattern: "*"
//	    type: static
//	    options:
//	      source_language: en
type Pipeline struct {
	DefaultLanguage string          `yaml:"default_language"`
	Sources         []SourceBinding `yaml:"sources"`
}

// SourceBinding binds one category pattern to a source descriptor.
type SourceBinding struct {
	Pattern           string `yaml:"pattern"`
	i18n.SourceConfig `yaml:",inline"`
}

// LoadPipeline reads a YAML pipeline definition and builds an I18n instance
// from it. Source types referenced by the file must be registered, usually
// by blank-importing the source packages.
func LoadPipeline(path string, opts ...i18n.Option) (*i18n.I18n, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read pipeline file: %w", err)
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse pipeline file %s: %w", path, err)
	}

	return BuildPipeline(p, opts...)
}

// BuildPipeline turns a Pipeline definition into an I18n instance.
// Descriptors stay unrealized until a translation first selects them.
// Options given here are applied after the definition and can override it.
func BuildPipeline(p Pipeline, opts ...i18n.Option) (*i18n.I18n, error) {
	combined := make([]i18n.Option, 0, len(p.Sources)+len(opts)+1)

	if p.DefaultLanguage != "" {
		combined = append(combined, i18n.WithDefaultLanguage(p.DefaultLanguage))
	}
	for _, src := range p.Sources {
		combined = append(combined, i18n.WithSourceConfig(src.Pattern, src.SourceConfig))
	}
	combined = append(combined, opts...)

	return i18n.New(combined...)
}
