package models

import "errors"

var (
	// ErrSymbolResolution means every symbol source for an index failed.
	ErrSymbolResolution = errors.New("could not resolve index symbols")

	// ErrIndexUnavailable is the user-facing failure for a whole index page.
	ErrIndexUnavailable = errors.New("could not fetch index data, please retry")

	// ErrMalformedResponse marks an upstream chart or fundamentals payload
	// that is missing its result or carries an error object.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrInvalidArgument marks bad caller input (unknown index, filter, sort, empty symbol).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a symbol the provider does not know.
	ErrNotFound = errors.New("not found")
)
