// Package repository implements MySQL persistence for the CRM schema.
// Sentinel errors defined here let handlers translate storage failures into
// the HTTP taxonomy without inspecting raw driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist (or is soft-deleted).
// Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a unique key, e.g. a
// duplicate username or group name. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmptyUpdate is returned when an update payload contains no
// whitelisted columns. Handlers translate this into HTTP 400; without it
// an empty PUT would report success without ever touching the database.
var ErrEmptyUpdate = errors.New("no updatable columns")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
