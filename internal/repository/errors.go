// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the summarization orchestrator to distinguish between
// different failure scenarios. For example, ErrUsernameExists signals
// that account creation cannot proceed because the name is already
// taken, while ErrStorageUnavailable wraps any lower-level database
// failure that prevented a store operation from completing.
package repository

import "errors"

// ErrUsernameExists is returned when account creation collides with an
// existing username. The store is left unchanged. Handlers should
// translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrStorageUnavailable is returned when the underlying storage cannot
// complete a single-record operation. It is fatal to the current
// operation; no retry is attempted and no partial state is left behind
// because every store call is a single statement.
var ErrStorageUnavailable = errors.New("storage unavailable")
