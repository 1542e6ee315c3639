package i18n

import "context"

// Translator provides a simplified translation interface with a fixed
// language and category context. It wraps an I18n instance and never fails:
// when resolution errors out, the key itself is formatted and returned, so
// user-facing rendering always produces text.
type Translator struct {
	i18n     *I18n
	language string
	category string
}

// NewTranslator creates a Translator bound to the given language and
// category. An empty language falls back to the instance's default language.
func NewTranslator(i *I18n, language, category string) *Translator {
	if i == nil {
		panic("i18n: translation pipeline is not provided")
	}
	if language == "" {
		language = i.DefaultLanguage()
	}
	return &Translator{
		i18n:     i,
		language: language,
		category: category,
	}
}

// T translates a key using the translator's language and category context.
// Parameters from all provided maps are merged, later maps winning.
func (t *Translator) T(ctx context.Context, key string, params ...M) string {
	merged := mergeParams(params...)
	result, err := t.i18n.Translate(ctx, t.category, key, merged, t.language)
	if err != nil {
		return t.i18n.Format(key, merged, t.language)
	}
	return result
}

// Language returns the translator's language context.
func (t *Translator) Language() string {
	return t.language
}

// Category returns the translator's category context.
func (t *Translator) Category() string {
	return t.category
}
