package i18n

import "errors"

// Resolution and construction errors. These are the only hard failures in the
// package: a category nobody registered a source for, and a descriptor that
// cannot be turned into a source. Translation misses and formatter failures
// degrade to fallback text instead of returning errors.
var (
	ErrNoSource          = errors.New("no message source for category")
	ErrInvalidDescriptor = errors.New("invalid message source descriptor")
)
