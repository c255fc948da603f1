package repository

import (
	"errors"

	"fsti-hub/internal/database"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrReferenceMissing = errors.New("referenced record does not exist")
)

// mapWriteError turns constraint violations into repository sentinels.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if database.IsForeignKeyViolation(err) {
		return ErrReferenceMissing
	}
	return err
}

func mapReadError(err error) error {
	if database.IsNoRows(err) {
		return ErrNotFound
	}
	return err
}
