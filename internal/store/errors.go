package store

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/mattn/go-sqlite3"
)

// conflictErr classifies an insert failure: slug collisions become
// conflict errors the reconciler skips over, anything else is a
// storage failure.
func conflictErr(err error, kind, slug string) error {
	var serr sqlite3.Error
	unique := errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
	if unique || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return goerrors.Wrap(err, goerrors.CategoryConflict, fmt.Sprintf("%s %q already exists", kind, slug))
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("insert %s %q", kind, slug))
}

func notFoundErr(kind, slug string) error {
	return goerrors.New(fmt.Sprintf("%s %q not found", kind, slug), goerrors.CategoryNotFound)
}

func storageErr(err error, op, kind, slug string) error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("%s %s %q", op, kind, slug))
}
