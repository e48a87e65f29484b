// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP statuses without inspecting driver error strings.
package repository

import "errors"

// ErrUsernameExists is returned when an account cannot be created because
// the username is already taken. Handlers should translate this into an
// HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrScheduleNotFound is returned when a referenced train schedule does
// not exist, either on direct lookup or when a booking insert trips the
// foreign key. Handlers should translate this into an HTTP 404 response.
var ErrScheduleNotFound = errors.New("schedule not found")
