package jquants

import "errors"

// Error kinds reported by the client and the writers. Callers match them
// with errors.Is; the wrapped message carries the failing stage and, for
// HTTP failures, the status and the API's own message.
var (
	// ErrAuthentication reports rejected credentials or a malformed token
	// response during the credential exchange.
	ErrAuthentication = errors.New("authentication failed")

	// ErrTokenExpired reports a refresh token rejected as expired by the ID
	// token endpoint.
	ErrTokenExpired = errors.New("refresh token expired")

	// ErrFetch reports a non-success HTTP status from a data endpoint.
	ErrFetch = errors.New("fetch failed")

	// ErrParse reports a response body that does not decode into the
	// expected shape.
	ErrParse = errors.New("malformed API response")

	// ErrWrite reports a filesystem failure while writing an output file.
	ErrWrite = errors.New("write failed")
)
