// Package apperr holds the error taxonomy shared by repositories, services and
// handlers. Lower layers wrap these sentinels; handlers map them to HTTP
// statuses with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidInput    = errors.New("invalid input")
)

// MaxContentBytes bounds free-text bodies, measured in UTF-8 bytes.
const MaxContentBytes = 100000

// CheckSize returns ErrContentTooLarge when any of the given texts exceeds MaxContentBytes.
func CheckSize(texts ...string) error {
	for _, t := range texts {
		if len(t) > MaxContentBytes {
			return ErrContentTooLarge
		}
	}
	return nil
}
