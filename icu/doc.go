// Package icu implements the practically needed subset of ICU message
// syntax: named arguments ({name}), locale-aware numbers ({n, number}),
// plural and selectordinal arguments with CLDR cardinal/ordinal rules from
// golang.org/x/text, and select arguments. Apostrophe quoting ('' and
// quoted syntax characters) is honored.
//
// The package exists to back the default formatter seam of the i18n
// pipeline; any error it returns makes the pipeline fall back to the
// unformatted message.
package icu
