package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("store: record not found")

// ErrDuplicateEmail is returned when an insert violates the email
// uniqueness constraint.
var ErrDuplicateEmail = errors.New("store: email already exists")

// translate converts GORM and driver errors into the store's sentinel errors.
// Unknown errors pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

// isDuplicateKeyError catches drivers whose uniqueness violations GORM does
// not translate (e.g. SQLite without error translation).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
