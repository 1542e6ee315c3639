package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgwireless/i18n"
)

func TestMatchLanguage(t *testing.T) {
	available := []string{"en", "es", "fr"}

	t.Run("empty header returns first available", func(t *testing.T) {
		assert.Equal(t, "en", i18n.MatchLanguage("", available))
	})

	t.Run("no available languages returns empty", func(t *testing.T) {
		assert.Equal(t, "", i18n.MatchLanguage("en", nil))
	})

	t.Run("highest quality match wins", func(t *testing.T) {
		header := "es-ES,es;q=0.9,en;q=0.8,fr;q=0.7"
		assert.Equal(t, "es", i18n.MatchLanguage(header, available))
	})

	t.Run("exact match beats base tag match", func(t *testing.T) {
		header := "en-US;q=0.8,fr;q=0.8"
		assert.Equal(t, "fr", i18n.MatchLanguage(header, available))
	})

	t.Run("base tag matches regional available language", func(t *testing.T) {
		assert.Equal(t, "pt-BR", i18n.MatchLanguage("pt", []string{"en", "pt-BR"}))
	})

	t.Run("regional request matches base available language", func(t *testing.T) {
		assert.Equal(t, "es", i18n.MatchLanguage("es-MX", available))
	})

	t.Run("zero quality tags are skipped", func(t *testing.T) {
		assert.Equal(t, "en", i18n.MatchLanguage("fr;q=0,en;q=0.5", available))
	})

	t.Run("unknown languages fall back to first available", func(t *testing.T) {
		assert.Equal(t, "en", i18n.MatchLanguage("ja,ko;q=0.9", available))
	})

	t.Run("underscores normalize to hyphens", func(t *testing.T) {
		assert.Equal(t, "es", i18n.MatchLanguage("es_MX", available))
	})
}
