package domain

import "errors"

// Domain errors represent model assembly failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested input file or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformed indicates an input parsed but lacks required entities,
	// for example a morphology document without any cells.
	ErrMalformed = errors.New("malformed document")

	// ErrValidation indicates an assembled or loaded structure fails
	// schema or cross-reference checks.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateID indicates an id collision, such as two channel
	// densities with the same id on one cell.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown rate type, step kind or storage driver.
	ErrUnsupportedType = errors.New("unsupported type")
)
