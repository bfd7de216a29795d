package models

import "errors"

var (
	// ErrModelUnavailable means the remote fetch failed and no usable cached
	// artifact exists.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrCacheCorrupt means a cached artifact exists but cannot be used,
	// even after one re-download attempt.
	ErrCacheCorrupt = errors.New("cached model artifact is corrupt")

	// ErrUnknownLanguage means the language has no model in the bundle.
	ErrUnknownLanguage = errors.New("unknown model language")
)
