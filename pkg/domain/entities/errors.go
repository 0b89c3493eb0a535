package entities

import "errors"

// Error taxonomy for parsing and conversion. None of these abort an
// aggregation run; callers keep the offending entry unmerged and flag it.
var (
	ErrUnparseableQuantity = errors.New("unparseable quantity")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrIncompatibleUnits   = errors.New("incompatible units")
	ErrUnsupportedUnit     = errors.New("unsupported unit")
)

// ErrRecipeNotFound is returned by recipe repositories for unknown ids
var ErrRecipeNotFound = errors.New("recipe not found")
