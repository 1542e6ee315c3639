package i18n

import "maps"

// M is a convenience type for parameter maps used in translations.
// It maps placeholder names to their values.
type M map[string]any

// mergeParams collapses multiple parameter maps into one, later maps winning.
// Returns nil when nothing was provided so the empty-params fast path stays hot.
func mergeParams(params ...M) M {
	switch len(params) {
	case 0:
		return nil
	case 1:
		return params[0]
	}
	merged := make(M)
	for _, p := range params {
		maps.Copy(merged, p)
	}
	return merged
}
