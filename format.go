package i18n

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// icuSyntax detects ICU-style argument syntax: an opening brace
// followed by an argument name and a comma, e.g. "{count, plural, ...}".
// Presence of the pattern is enough to route the message through the
// formatter; plain "{name}" placeholders never match it.
var icuSyntax = regexp.MustCompile(`\{\s*\w+\s*,`)

// Format substitutes params into message for the given language.
//
// Messages without ICU-style syntax get simple placeholder substitution:
// every "{name}" with a matching parameter is replaced, unmatched
// placeholders stay verbatim, and the formatter is never invoked. Messages
// with ICU syntax are delegated to the formatter; if it fails, the original
// message is returned unchanged rather than surfacing the error.
func (i *I18n) Format(message string, params M, language string) string {
	if len(params) == 0 {
		return message
	}

	if icuSyntax.MatchString(message) {
		result, err := i.Formatter().Format(message, params, language)
		if err != nil {
			if i.log != nil {
				i.log.Warn("message formatting failed",
					slog.String("language", language),
					slog.String("message", message),
					slog.Any("error", err),
				)
			}
			return message
		}
		return result
	}

	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
