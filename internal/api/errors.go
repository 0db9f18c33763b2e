package api

import "errors"

// Client errors. ErrConflict and ErrUnavailable are the two recoverable
// categories the UI distinguishes: a conflict means the local snapshot is
// stale and a re-fetch is required; unavailable means the request never took
// effect and may be retried by the user.
var (
	ErrConflict        = errors.New("appointment changed on the server")
	ErrUnavailable     = errors.New("dealer backend unavailable")
	ErrInvalidResponse = errors.New("invalid response from dealer backend")
)
