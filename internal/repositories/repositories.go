// Package repositories provides the sqlite persistence layer for the
// discovery pipeline's entities: the exclusion list, the genre vocabulary,
// and the per-genre search progress cursor.
//
// Every operation commits independently; no transaction spans an upstream
// fetch. Storage failures wrap [shared.ErrStorage], constraint conflicts on
// the exclusion list wrap [shared.ErrDuplicateExclusion], and stale
// compare-and-swap advances wrap [shared.ErrStaleProgress].
package repositories

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isConstraintErr reports whether err is a sqlite uniqueness violation
// (primary key or unique index).
func isConstraintErr(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// isForeignKeyErr reports whether err is a sqlite foreign key violation.
func isForeignKeyErr(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
