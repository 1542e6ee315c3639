package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgwireless/i18n"
)

func TestTranslator(t *testing.T) {
	ctx := context.Background()

	source := &memSource{
		lang: "en",
		messages: map[string]string{
			"es/app/welcome": "Bienvenido, {username}",
		},
	}

	newPipeline := func(t *testing.T) *i18n.I18n {
		t.Helper()
		translations, err := i18n.New(
			i18n.WithSource("app*", source),
			i18n.WithDefaultLanguage("es"),
		)
		require.NoError(t, err)
		return translations
	}

	t.Run("translates within fixed context", func(t *testing.T) {
		translator := i18n.NewTranslator(newPipeline(t), "es", "app")

		assert.Equal(t, "Bienvenido, Juan", translator.T(ctx, "welcome", i18n.M{"username": "Juan"}))
		assert.Equal(t, "es", translator.Language())
		assert.Equal(t, "app", translator.Category())
	})

	t.Run("empty language falls back to pipeline default", func(t *testing.T) {
		translator := i18n.NewTranslator(newPipeline(t), "", "app")
		assert.Equal(t, "es", translator.Language())
	})

	t.Run("merges parameter maps with later maps winning", func(t *testing.T) {
		translator := i18n.NewTranslator(newPipeline(t), "es", "app")

		result := translator.T(ctx, "welcome",
			i18n.M{"username": "first"},
			i18n.M{"username": "second"},
		)
		assert.Equal(t, "Bienvenido, second", result)
	})

	t.Run("unbound category renders the key instead of failing", func(t *testing.T) {
		translator := i18n.NewTranslator(newPipeline(t), "es", "validation")

		assert.Equal(t, "Hola, Juan", translator.T(ctx, "Hola, {username}", i18n.M{"username": "Juan"}))
	})

	t.Run("nil pipeline panics", func(t *testing.T) {
		assert.Panics(t, func() {
			i18n.NewTranslator(nil, "es", "app")
		})
	})
}
