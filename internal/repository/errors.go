// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: ErrStateConflict maps
// to a 400 "not found or already processed" response on approval
// transitions, and ErrEmailExists to a 409 on registration.
package repository

import "errors"

// ErrStateConflict is returned when a conditional update matched no row,
// meaning the target either does not exist or its status no longer equals
// the expected prior state (a concurrent request won the race).
var ErrStateConflict = errors.New("not found or already processed")

// ErrEmailExists is returned on registration when the email is taken.
var ErrEmailExists = errors.New("email already exists")
