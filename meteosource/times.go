package meteosource

import "time"

// Wire time formats used by the Meteosource API. These are contract
// constants: string indexes into a Timeseries must match them exactly.
const (
	// TimeFormat is the wire format of full instants (date with time of day).
	TimeFormat = "2006-01-02T15:04:05"
	// DayFormat is the wire format of day-only dates.
	DayFormat = "2006-01-02"
)

// parseInstant parses a wire-format instant. The API always serves instants
// in UTC; the result is converted to the target zone's wall clock. During a
// DST fall-back transition two distinct UTC instants map to the same local
// wall-clock string; both stay distinct instants here.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(TimeFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// parseDay parses a wire-format day-only date. Days carry no timezone.
func parseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// toDay coerces a caller-supplied date to a plain calendar day. Strings must
// match DayFormat exactly; a time.Time is truncated to its calendar day.
// Anything else fails with InvalidDateFormatError.
func toDay(v any) (time.Time, error) {
	switch d := v.(type) {
	case string:
		day, err := parseDay(d)
		if err != nil {
			return time.Time{}, &InvalidDateFormatError{Value: d, Format: DayFormat}
		}
		return day, nil
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, &InvalidDateFormatError{Value: v, Format: DayFormat}
	}
}
