package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a lookup by id found no product.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicate indicates an id collision on insert.
	ErrDuplicate = errors.New("duplicate product")
	// ErrInvalidInput indicates a format, range, enum or business-rule violation.
	ErrInvalidInput = errors.New("invalid product data")
)

// Invalidf builds an ErrInvalidInput with a caller-facing reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
