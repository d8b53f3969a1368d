// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios with
// errors.Is, whatever operation context has been wrapped around them.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as booking the same artist at the same venue and start time twice,
// or when a delete is blocked by rows that still reference the target.
// Handlers should translate this into a conflict notice.
var ErrConflict = errors.New("conflict")

// ErrInvalidReference is returned when a show references a venue or an
// artist that does not exist.
var ErrInvalidReference = errors.New("invalid reference")

// MySQL server error numbers mapped to the sentinels above.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1452
	mysqlNoReferencedRow1 = 1216
	mysqlRowIsReferenced  = 1451
	mysqlRowIsReferenced1 = 1217
)

// classify maps driver errors onto repository sentinels and leaves every
// other error untouched.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlRowIsReferenced1:
		return fmt.Errorf("%w: %s", ErrConflict, myErr.Message)
	case mysqlNoReferencedRow, mysqlNoReferencedRow1:
		return fmt.Errorf("%w: %s", ErrInvalidReference, myErr.Message)
	}
	return err
}
