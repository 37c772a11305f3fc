package fineval

import "fmt"

// InvalidRangeError reports a start or end month bound that is neither a
// "YYYY-MM" month key nor the PriorMonth sentinel.
type InvalidRangeError struct {
	Value string // the offending bound as given by the caller
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid month bound %q: want %q or %q", e.Value, MonthFormat, PriorMonth)
}

// MissingFieldError reports a daily row that lacks the requested price field.
// Rows are never skipped silently: a missing field would otherwise surface as
// a misleading gap in the monthly series.
type MissingFieldError struct {
	Field string
	On    Date // date of the offending row
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row on %s has no field %q", e.On, e.Field)
}

// TypeMismatchError reports a price field that is present but not numeric.
type TypeMismatchError struct {
	Field string
	On    Date // date of the offending row
	Value any  // the non-numeric value found
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q on %s is not numeric: got %T (%v)", e.Field, e.On, e.Value, e.Value)
}
