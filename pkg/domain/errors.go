package domain

import "errors"

// ErrInvalidDirection is returned when a swipe direction is outside the four
// cardinal values. The transition aborts with no partial state committed.
var ErrInvalidDirection = errors.New("invalid swipe direction")

// ErrUnhandledActionType is returned when a CLIENT_ACTION names an action
// type with no registered handler. The transition aborts.
var ErrUnhandledActionType = errors.New("unhandled client action type")

// ErrInvalidPayload is returned when an event envelope carries a payload
// that does not match its declared type.
var ErrInvalidPayload = errors.New("invalid event payload")

// ErrClientNotFound is returned by adapters when a request names a client id
// absent from the session. Inside the reducer the same condition is a
// silent no-op, never an error.
var ErrClientNotFound = errors.New("client not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
