package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unknown product, party, sale or register id.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart reports a sale attempt with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrRegisterAlreadyOpen reports an open attempt while the operator
	// already has an open register.
	ErrRegisterAlreadyOpen = errors.New("register already open for operator")

	// ErrRegisterNotOpen reports a close attempt on a register that is not open.
	ErrRegisterNotOpen = errors.New("register is not open")

	// ErrPermissionDenied reports a caller whose role does not allow a section.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidCredentials reports a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is the base of all input validation failures.
	ErrValidation = errors.New("validation failed")
)

// Validationf builds an input validation error. Callers match it with
// errors.Is(err, ErrValidation).
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
