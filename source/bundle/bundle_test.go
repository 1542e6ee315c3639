package bundle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgwireless/i18n/source/bundle"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	en := "[app]\nwelcome = \"Welcome, {username}\"\ngoodbye = \"Goodbye\"\n"
	es := "[app]\nwelcome = \"Bienvenido, {username}\"\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.en.toml"), []byte(en), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.es.toml"), []byte(es), 0o644))
	return dir
}

func TestSource(t *testing.T) {
	ctx := context.Background()

	t.Run("translates category namespaced messages", func(t *testing.T) {
		src, err := bundle.New("en")
		require.NoError(t, err)
		require.NoError(t, src.LoadDir(writeLocales(t)))

		msg, ok := src.Translate(ctx, "app", "welcome", "es")
		require.True(t, ok)
		assert.Equal(t, "Bienvenido, {username}", msg)
	})

	t.Run("serves default language when translation is absent", func(t *testing.T) {
		src, err := bundle.New("en")
		require.NoError(t, err)
		require.NoError(t, src.LoadDir(writeLocales(t)))

		// go-i18n's matcher falls back to the bundle default on its own.
		msg, ok := src.Translate(ctx, "app", "goodbye", "es")
		require.True(t, ok)
		assert.Equal(t, "Goodbye", msg)
	})

	t.Run("unknown key is a miss", func(t *testing.T) {
		src, err := bundle.New("en")
		require.NoError(t, err)
		require.NoError(t, src.LoadDir(writeLocales(t)))

		_, ok := src.Translate(ctx, "app", "nope", "es")
		assert.False(t, ok)
	})

	t.Run("rejects invalid source language", func(t *testing.T) {
		_, err := bundle.New("not a language tag")
		assert.Error(t, err)
	})

	t.Run("reports source language", func(t *testing.T) {
		src, err := bundle.New("en")
		require.NoError(t, err)
		assert.Equal(t, "en", src.SourceLanguage())
	})

	t.Run("load dir fails on missing directory", func(t *testing.T) {
		src, err := bundle.New("en")
		require.NoError(t, err)
		assert.Error(t, src.LoadDir(filepath.Join(t.TempDir(), "missing")))
	})
}
