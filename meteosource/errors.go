package meteosource

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyInstance is returned when indexing a container that holds no
	// data, typically because its section was absent from the payload.
	ErrEmptyInstance = errors.New("the instance does not contain any data")

	// ErrInvalidArgument is returned when a request specifies an ambiguous
	// or incomplete location: only place_id or lat+lon can be given.
	ErrInvalidArgument = errors.New("only place_id or lat+lon can be specified")

	// ErrInvalidDateSpecification is returned when a time-machine request
	// mixes or omits its date parameters.
	ErrInvalidDateSpecification = errors.New(`specify either "date" or "date_from" and "date_to"`)
)

// APIError represents a non-success response from the Meteosource API. The
// request is never retried; the failure surfaces directly to the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IndexOutOfRangeError is returned when an integer index falls outside a
// non-empty container's bounds.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for %d timesteps", e.Index, e.Length)
}

// InvalidIndexTypeError is returned when a Timeseries is indexed with an
// unsupported key type.
type InvalidIndexTypeError struct {
	Index any
}

func (e *InvalidIndexTypeError) Error() string {
	return fmt.Sprintf("invalid index type %T (%v) to timeseries", e.Index, e.Index)
}

// InvalidStrIndexError is returned when a string index is not present in the
// timeseries' string-date index.
type InvalidStrIndexError struct {
	Index string
}

func (e *InvalidStrIndexError) Error() string {
	return fmt.Sprintf("invalid string index %q to timeseries", e.Index)
}

// InvalidDatetimeIndexError is returned when an instant index is not present
// in the timeseries' datetime index.
type InvalidDatetimeIndexError struct {
	Index time.Time
}

func (e *InvalidDatetimeIndexError) Error() string {
	return fmt.Sprintf("invalid datetime index %q to timeseries", e.Index.Format(TimeFormat))
}

// InvalidAlertIndexError is returned when an alerts container is indexed
// with anything other than an integer.
type InvalidAlertIndexError struct {
	Index any
}

func (e *InvalidAlertIndexError) Error() string {
	return fmt.Sprintf("invalid index type %T to alerts, only integers are supported", e.Index)
}

// InvalidDateFormatError is returned when a caller-supplied date does not
// match the expected wire pattern, or is of an unsupported type.
type InvalidDateFormatError struct {
	Value  any
	Format string
}

func (e *InvalidDateFormatError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("invalid date %q, should be %q", s, e.Format)
	}
	return fmt.Sprintf("invalid date %v (%T), should be a %q string or a time.Time instance",
		e.Value, e.Value, e.Format)
}

// InvalidDateRangeError is returned when a requested range's start day is
// not strictly before its end day.
type InvalidDateRangeError struct {
	From time.Time
	To   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("date_from %q is not smaller than date_to %q",
		e.From.Format(DayFormat), e.To.Format(DayFormat))
}

// InvalidClassTypeError is returned when containers of mismatched kinds are
// merged, or when an activity query is given an unsupported reference type.
type InvalidClassTypeError struct {
	Got  any
	Want any
}

func (e *InvalidClassTypeError) Error() string {
	return fmt.Sprintf("invalid type: got %v, want %v", e.Got, e.Want)
}
