package mysql

import (
	"errors"

	"gorm.io/gorm"

	"loan-ledger/internal/domain/errs"
)

// mapErr classifies a gorm error at the repository boundary. notFound is the
// entity-specific sentinel returned for gorm.ErrRecordNotFound.
func mapErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Wrap(errs.KindConflict, "duplicate record", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.Wrap(errs.KindConflict, "record is referenced by or references a missing row", err)
	default:
		return errs.Wrap(errs.KindPersistence, "database error", err)
	}
}
