package cnf

import "errors"

// Encoding precondition errors. Every one of these is fail-fast: the
// compiler refuses to emit a possibly-wrong CNF rather than guess at
// recovery.
var (
	// ErrBitWidthExceeded is returned when a value cannot be represented in
	// the requested number of bits.
	ErrBitWidthExceeded = errors.New("cnf: value does not fit in requested bit width")

	// ErrLengthMismatch is returned when two literal lists that must be the
	// same length are not.
	ErrLengthMismatch = errors.New("cnf: literal lists have mismatched lengths")

	// ErrEmptyInput is returned by encoders that require at least one input
	// literal or number (e.g. popcount, sum of numbers).
	ErrEmptyInput = errors.New("cnf: encoder requires a non-empty input")

	// ErrAllZeroForbidden names the all-zero input that InvertNumber rules
	// out, because its two's-complement negation overflows the width.
	// InvertNumber enforces that with a clause and does not return this
	// error.
	ErrAllZeroForbidden = errors.New("cnf: cannot invert an all-zero number")
)
