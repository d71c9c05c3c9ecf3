// Package repository implements the data access layer: one file per entity,
// each a thin set of parameterized queries over *sql.DB. Sentinel errors
// defined here let handlers translate failures into specific HTTP statuses
// instead of a blanket 500.
package repository

import (
	"errors"
	"strings"
)

// ErrInvalidStatus is returned when a write carries a status value outside
// the closed set accepted by the column (the four milestone labels, or the
// three project statuses). Handlers translate it into HTTP 400 so clients
// can tell a bad value apart from a server failure.
var ErrInvalidStatus = errors.New("invalid status value")

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
