// Package i18n resolves message categories to translation sources and
// formats localized messages with named parameters.
//
// Categories are logical namespaces for translatable messages (for example
// "app/errors" or "validation"). Sources are bound to category patterns: an
// exact name, a "prefix*" wildcard covering a whole namespace, or the "*"
// catch-all. Resolution prefers an exact match, then the first registered
// wildcard whose prefix matches, then the catch-all, and memoizes the result
// per category so repeated lookups are O(1).
//
// # Basic Usage
//
// Bind sources at construction and translate:
//
//	src := static.New("en")
//	src.Add("app", "es", map[string]string{
//		"welcome": "Bienvenido, {username}",
//	})
//
//	translations, err := i18n.New(
//		i18n.WithSource("app*", src),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	msg, err := translations.Translate(ctx, "app", "welcome",
//		i18n.M{"username": "Alexander"}, "es")
//	// "Bienvenido, Alexander"
//
// # Configuration-Driven Sources
//
// Sources can be bound as inert descriptors and realized lazily through the
// source type registry. Source packages register their factories from init,
// so a blank import is enough to make a type tag available:
//
//	import _ "github.com/pgwireless/i18n/source/file"
//
//	translations, err := i18n.New(
//		i18n.WithSourceConfig("app*", i18n.SourceConfig{
//			Type: "file",
//			Options: map[string]any{
//				"path":            "./locales",
//				"source_language": "en",
//			},
//		}),
//	)
//
// Each descriptor is realized at most once; the first resolution that
// selects it constructs the source and caches the instance.
//
// # Formatting
//
// Messages without ICU-style syntax get simple placeholder substitution:
// "{name}" is replaced by the parameter's value and unmatched placeholders
// stay verbatim. When ICU argument syntax such as
// "{count, plural, one{# item} other{# items}}" is detected, formatting is
// delegated to the configured Formatter (the icu subpackage by default). A
// formatter failure returns the original message unchanged.
//
// # Miss Semantics
//
// A translation miss never fails. The original key text is formatted using
// the source's own language rather than the requested one, because
// untranslated text is assumed to be written in the source language and
// plural or number rules must follow it. Only two conditions are errors: a
// category with no matching binding (ErrNoSource) and a descriptor that
// cannot be realized (ErrInvalidDescriptor).
//
// # Thread Safety
//
// An I18n instance is safe for concurrent use. The resolution cache is
// guarded so concurrent first-time lookups of the same category realize the
// underlying descriptor exactly once.
package i18n
