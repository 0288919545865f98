package liststore

import "errors"

var (
	// ErrRemoteUnavailable indicates the store could not be reached or
	// answered with a non-success status. Operations are never retried.
	ErrRemoteUnavailable = errors.New("list store unavailable")

	// ErrNoIdentity indicates a create returned no usable item id.
	ErrNoIdentity = errors.New("list store returned no item id")

	// ErrMalformedResponse indicates the store's JSON could not be parsed.
	ErrMalformedResponse = errors.New("malformed list store response")

	// ErrNotFound indicates the requested item does not exist.
	ErrNotFound = errors.New("list item not found")
)
