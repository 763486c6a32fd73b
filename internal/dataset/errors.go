package dataset

import (
	"errors"
	"fmt"
)

// ErrTooFewRows is returned when a routine needs more rows than the
// dataset has. None of the statistics here are defined on an empty
// dataset, and the Gini coefficient additionally needs at least two rows.
var ErrTooFewRows = errors.New("too few rows")

// ErrZeroTotal is returned when a denominator that should be a positive
// total (sum of actuals, event count, non-missing count) is zero. Callers
// get this error instead of a silently propagated NaN.
var ErrZeroTotal = errors.New("zero total")

// ErrNonFinite is returned when a statistical routine receives a NaN or
// infinite value. Missing values must be imputed before scoring; letting
// them through would silently turn the statistic itself into NaN.
var ErrNonFinite = errors.New("non-finite value")

// SchemaError reports a reference to a column the dataset does not have,
// or a column whose declared kind does not match the requested use.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}
