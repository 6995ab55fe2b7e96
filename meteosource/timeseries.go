package meteosource

import (
	"fmt"
	"time"
)

// SectionKind identifies which forecast section a Timeseries holds. The
// kind determines whether the temporal key is a full instant or a day-only
// date.
type SectionKind string

const (
	SectionMinutely    SectionKind = "minutely"
	SectionHourly      SectionKind = "hourly"
	SectionDaily       SectionKind = "daily"
	SectionTimeMachine SectionKind = "time_machine"
	SectionStatistics  SectionKind = "statistics"
)

// dateField returns the temporal field name and wire format for the kind.
func (k SectionKind) dateField() (string, string) {
	switch k {
	case SectionDaily, SectionStatistics:
		return "day", DayFormat
	default:
		return "date", TimeFormat
	}
}

// Timeseries is an ordered sequence of Snapshots for one forecast section,
// with parallel string-date and instant indexes kept in lockstep with the
// data. Entry order is the order served by the API; it is never re-sorted.
type Timeseries struct {
	kind       SectionKind
	loc        *time.Location
	data       []*Snapshot
	datesStr   []string
	datesDT    []time.Time
	summary    string
	hasSummary bool
}

// newTimeseries builds the Snapshot sequence and both date indexes from one
// section payload. A nil payload yields an empty instance, not an error.
func newTimeseries(payload map[string]any, kind SectionKind, loc *time.Location) (*Timeseries, error) {
	ts := &Timeseries{kind: kind, loc: loc}
	if payload == nil {
		return ts, nil
	}
	field, format := kind.dateField()
	rows, _ := payload["data"].([]any)
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed %s entry of type %T", kind, row)
		}
		snap, err := newSnapshot(m, loc)
		if err != nil {
			return nil, err
		}
		dt, ok := snap.Time(field)
		if !ok {
			return nil, fmt.Errorf("%s entry without %q field", kind, field)
		}
		ts.data = append(ts.data, snap)
		ts.datesDT = append(ts.datesDT, dt)
		ts.datesStr = append(ts.datesStr, dt.Format(format))
	}
	if s, ok := payload["summary"].(string); ok {
		ts.summary = s
		ts.hasSummary = true
	}
	return ts, nil
}

// Kind returns the section this timeseries holds.
func (ts *Timeseries) Kind() SectionKind { return ts.kind }

// Len returns the number of timesteps; zero for an empty instance.
func (ts *Timeseries) Len() int { return len(ts.data) }

// Location returns the timezone the timeseries' instants are expressed in.
func (ts *Timeseries) Location() *time.Location { return ts.loc }

// Summary returns the free-text precipitation narrative, present only for
// minute-level data.
func (ts *Timeseries) Summary() (string, bool) { return ts.summary, ts.hasSummary }

// Dates returns a copy of the parsed-datetime index.
func (ts *Timeseries) Dates() []time.Time {
	return append([]time.Time(nil), ts.datesDT...)
}

// DateStrings returns a copy of the string-date index.
func (ts *Timeseries) DateStrings() []string {
	return append([]string(nil), ts.datesStr...)
}

// At returns the i-th Snapshot in sequence order.
func (ts *Timeseries) At(i int) (*Snapshot, error) {
	if len(ts.data) == 0 {
		return nil, ErrEmptyInstance
	}
	if i < 0 || i >= len(ts.data) {
		return nil, &IndexOutOfRangeError{Index: i, Length: len(ts.data)}
	}
	return ts.data[i], nil
}

// AtDate returns the first Snapshot whose string-date index equals s. The
// format must match the section's wire format exactly; no normalization is
// attempted. On a fall-back day two timesteps share the same wall-clock
// string, so "first match" is deliberate policy.
func (ts *Timeseries) AtDate(s string) (*Snapshot, error) {
	if len(ts.data) == 0 {
		return nil, ErrEmptyInstance
	}
	for i, d := range ts.datesStr {
		if d == s {
			return ts.data[i], nil
		}
	}
	return nil, &InvalidStrIndexError{Index: s}
}

// AtTime returns the Snapshot at instant t. The argument is converted to
// the container's timezone and compared as an absolute instant; to look up
// by local wall clock, construct t in Location() or use the string index.
func (ts *Timeseries) AtTime(t time.Time) (*Snapshot, error) {
	if len(ts.data) == 0 {
		return nil, ErrEmptyInstance
	}
	t = t.In(ts.loc)
	for i, d := range ts.datesDT {
		if d.Equal(t) {
			return ts.data[i], nil
		}
	}
	return nil, &InvalidDatetimeIndexError{Index: t}
}

// Get looks up a Snapshot by integer position, wire-format date string, or
// time.Time. Any other index type fails with InvalidIndexTypeError.
func (ts *Timeseries) Get(index any) (*Snapshot, error) {
	if len(ts.data) == 0 {
		return nil, ErrEmptyInstance
	}
	switch idx := index.(type) {
	case int:
		return ts.At(idx)
	case string:
		return ts.AtDate(idx)
	case time.Time:
		return ts.AtTime(idx)
	default:
		return nil, &InvalidIndexTypeError{Index: index}
	}
}

// Append concatenates other's data and both date indexes after ts's own, in
// call order. Entries are not re-sorted and duplicates are not suppressed,
// so appending overlapping date ranges yields duplicate entries.
func (ts *Timeseries) Append(other *Timeseries) error {
	if other == nil {
		return &InvalidClassTypeError{Got: nil, Want: ts.kind}
	}
	if other.kind != ts.kind {
		return &InvalidClassTypeError{Got: other.kind, Want: ts.kind}
	}
	ts.data = append(ts.data, other.data...)
	ts.datesStr = append(ts.datesStr, other.datesStr...)
	ts.datesDT = append(ts.datesDT, other.datesDT...)
	return nil
}

// ToMaps exports every timestep as a flattened mapping, in sequence order.
// The result is what an external tabular library indexes by the temporal
// field.
func (ts *Timeseries) ToMaps() []map[string]any {
	rows := make([]map[string]any, len(ts.data))
	for i, snap := range ts.data {
		rows[i] = snap.ToMap()
	}
	return rows
}

func (ts *Timeseries) String() string {
	if len(ts.data) == 0 {
		return fmt.Sprintf("empty %s timeseries", ts.kind)
	}
	return fmt.Sprintf("%s timeseries with %d timesteps from %s to %s",
		ts.kind, len(ts.data), ts.datesStr[0], ts.datesStr[len(ts.datesStr)-1])
}
