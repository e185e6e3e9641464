package domain

import "errors"

var (
	// ErrSourceUnavailable marks failures reaching the article store or a remote source.
	ErrSourceUnavailable = errors.New("article source unavailable")
	// ErrInvalidFilter is returned for limits or flags a source cannot serve.
	ErrInvalidFilter = errors.New("invalid article filter")
)
