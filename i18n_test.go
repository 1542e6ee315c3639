package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgwireless/i18n"
)

// recordingFormatter captures Format calls and returns a canned answer.
type recordingFormatter struct {
	result    string
	err       error
	calls     int
	languages []string
	templates []string
}

func (f *recordingFormatter) Format(template string, params map[string]any, language string) (string, error) {
	f.calls++
	f.languages = append(f.languages, language)
	f.templates = append(f.templates, template)
	return f.result, f.err
}

func TestNew(t *testing.T) {
	t.Run("creates instance with defaults", func(t *testing.T) {
		translations, err := i18n.New()
		require.NoError(t, err)
		assert.NotNil(t, translations)
		assert.Equal(t, "en", translations.DefaultLanguage())
	})

	t.Run("sets custom default language", func(t *testing.T) {
		translations, err := i18n.New(i18n.WithDefaultLanguage("de"))
		require.NoError(t, err)
		assert.Equal(t, "de", translations.DefaultLanguage())
	})

	t.Run("returns error for empty default language", func(t *testing.T) {
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "language cannot be empty")
	})

	t.Run("returns error for empty pattern", func(t *testing.T) {
		_, err := i18n.New(i18n.WithSource("", &memSource{lang: "en"}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pattern cannot be empty")
	})

	t.Run("returns error for nil source", func(t *testing.T) {
		_, err := i18n.New(i18n.WithSource("app*", nil))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "source cannot be nil")
	})

	t.Run("returns error for nil formatter", func(t *testing.T) {
		_, err := i18n.New(i18n.WithFormatter(nil))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "formatter cannot be nil")
	})
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	newPipeline := func(t *testing.T, opts ...i18n.Option) *i18n.I18n {
		t.Helper()
		source := &memSource{
			lang: "de",
			messages: map[string]string{
				"ru/app/greeting":  "Привет, {username}!",
				"ru/app/files.icu": "{count, plural, one{файл} other{файлов}}",
			},
		}
		translations, err := i18n.New(append([]i18n.Option{i18n.WithSource("app*", source)}, opts...)...)
		require.NoError(t, err)
		return translations
	}

	t.Run("formats translation with requested language", func(t *testing.T) {
		translations := newPipeline(t)

		result, err := translations.Translate(ctx, "app", "greeting", i18n.M{"username": "Alexander"}, "ru")
		require.NoError(t, err)
		assert.Equal(t, "Привет, Alexander!", result)
	})

	t.Run("miss formats key text with source language", func(t *testing.T) {
		formatter := &recordingFormatter{result: "formatted"}
		translations := newPipeline(t, i18n.WithFormatter(formatter))

		// The key itself carries ICU syntax, so the fallback path goes
		// through the formatter and the language it receives is observable.
		key := "{count, plural, one{# item} other{# items}}"
		result, err := translations.Translate(ctx, "app", key, i18n.M{"count": 2}, "ru")
		require.NoError(t, err)
		assert.Equal(t, "formatted", result)

		require.Equal(t, 1, formatter.calls)
		assert.Equal(t, "de", formatter.languages[0], "fallback must format in the source language, not the requested one")
		assert.Equal(t, key, formatter.templates[0])
	})

	t.Run("miss without params returns key unchanged", func(t *testing.T) {
		translations := newPipeline(t)

		result, err := translations.Translate(ctx, "app", "missing.key", nil, "ru")
		require.NoError(t, err)
		assert.Equal(t, "missing.key", result)
	})

	t.Run("miss invokes missing translation handler", func(t *testing.T) {
		type missing struct{ language, category, key string }
		var seen []missing

		translations := newPipeline(t, i18n.WithMissingTranslationHandler(func(language, category, key string) {
			seen = append(seen, missing{language, category, key})
		}))

		_, err := translations.Translate(ctx, "app", "missing.key", nil, "ru")
		require.NoError(t, err)
		require.Len(t, seen, 1)
		assert.Equal(t, missing{"ru", "app", "missing.key"}, seen[0])
	})

	t.Run("hit does not invoke missing translation handler", func(t *testing.T) {
		called := false
		translations := newPipeline(t, i18n.WithMissingTranslationHandler(func(language, category, key string) {
			called = true
		}))

		_, err := translations.Translate(ctx, "app", "greeting", i18n.M{"username": "A"}, "ru")
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("unbound category propagates ErrNoSource", func(t *testing.T) {
		translations := newPipeline(t)

		_, err := translations.Translate(ctx, "validation", "greeting", nil, "ru")
		assert.ErrorIs(t, err, i18n.ErrNoSource)
	})
}

func TestFormatterAccessors(t *testing.T) {
	t.Run("default formatter constructed lazily and cached", func(t *testing.T) {
		translations, err := i18n.New()
		require.NoError(t, err)

		first := translations.Formatter()
		require.NotNil(t, first)
		assert.Same(t, first, translations.Formatter())
	})

	t.Run("SetFormatter takes effect on next format call", func(t *testing.T) {
		source := &memSource{
			lang:     "en",
			messages: map[string]string{"en/app/msg": "{count, plural, one{#} other{#}}"},
		}
		translations, err := i18n.New(i18n.WithSource("app*", source))
		require.NoError(t, err)

		replacement := &recordingFormatter{result: "replaced"}
		translations.SetFormatter(replacement)

		result, err := translations.Translate(context.Background(), "app", "msg", i18n.M{"count": 1}, "en")
		require.NoError(t, err)
		assert.Equal(t, "replaced", result)
		assert.Same(t, replacement, translations.Formatter())
	})
}
