// Package repository holds the MySQL-backed stores.  Sentinel errors let
// handlers map failures to status codes without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.  Handlers map it
// to 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state, such
// as a duplicate purchase id.  Handlers map it to 409.
var ErrConflict = errors.New("conflict")

// isDuplicate reports a MySQL 1062 duplicate-key error.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
