package meteosource

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindBool
	KindInstant
	KindDate
	KindNested
)

// Value is one Snapshot field: a scalar, a temporal value, or a nested
// Snapshot.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
	snap *Snapshot
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// Float64 returns the numeric value, or 0 for non-numbers.
func (v Value) Float64() float64 { return v.num }

// Int returns the numeric value truncated to int, or 0 for non-numbers.
func (v Value) Int() int { return int(v.num) }

// Text returns the string value, or "" for non-strings.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// String renders the value for display, whatever variant it holds.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatFloat(v.num)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInstant:
		return v.t.Format(TimeFormat)
	case KindDate:
		return v.t.Format(DayFormat)
	case KindNested:
		return fmt.Sprintf("snapshot with %d fields", v.snap.Len())
	}
	return "<unset>"
}

// Bool returns the boolean value, or false for non-booleans.
func (v Value) Bool() bool { return v.b }

// Time returns the instant or day-only date, or the zero time for
// non-temporal values. Instants are expressed in the owner's timezone;
// day-only dates carry no timezone.
func (v Value) Time() time.Time { return v.t }

// Snapshot returns the nested Snapshot, or nil for scalar values.
func (v Value) Snapshot() *Snapshot { return v.snap }

// native unwraps the value to its plain Go representation.
func (v Value) native() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInstant, KindDate:
		return v.t
	}
	return nil
}

// Field names that carry temporal values on the wire. The recognized set is
// part of the section contract; it is never inferred from value shape.
var (
	instantFields = map[string]bool{
		"date":        true,
		"last_update": true,
		"rise":        true,
		"set":         true,
		"onset":       true,
		"expires":     true,
	}
	dayFields = map[string]bool{
		"day": true,
	}
)

// Snapshot is a point-in-time or single-day weather record: an immutable
// set of named fields, possibly nested. Any field may be absent; absence
// means the field was not present in the payload, never null-with-meaning.
type Snapshot struct {
	loc    *time.Location
	keys   []string
	fields map[string]Value
}

// newSnapshot materializes a payload mapping into a Snapshot. Nested
// mappings recurse into nested Snapshots; temporal fields are normalized to
// loc. A nil payload yields an explicitly empty Snapshot; JSON nulls leave
// their field unset.
func newSnapshot(data map[string]any, loc *time.Location) (*Snapshot, error) {
	s := &Snapshot{loc: loc, fields: make(map[string]Value, len(data))}
	if data == nil {
		return s, nil
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw := data[key]
		if raw == nil {
			continue
		}
		v, err := s.loadValue(key, raw)
		if err != nil {
			return nil, err
		}
		if v.kind == KindInvalid {
			continue
		}
		s.keys = append(s.keys, key)
		s.fields[key] = v
	}
	return s, nil
}

// loadValue converts one raw payload value into its tagged form.
func (s *Snapshot) loadValue(key string, raw any) (Value, error) {
	switch value := raw.(type) {
	case map[string]any:
		nested, err := newSnapshot(value, s.loc)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindNested, snap: nested}, nil
	case string:
		if instantFields[key] {
			t, err := parseInstant(value, s.loc)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindInstant, t: t}, nil
		}
		if dayFields[key] {
			d, err := parseDay(value)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindDate, t: d}, nil
		}
		return Value{kind: KindString, str: value}, nil
	case bool:
		return Value{kind: KindBool, b: value}, nil
	case float64:
		return Value{kind: KindNumber, num: value}, nil
	case int:
		return Value{kind: KindNumber, num: float64(value)}, nil
	}
	// Unsupported raw shapes (e.g. arrays) are left unset.
	return Value{}, nil
}

// Fields returns the names of the data fields set during loading, sorted.
func (s *Snapshot) Fields() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of fields set.
func (s *Snapshot) Len() int { return len(s.keys) }

// Get returns the named field.
func (s *Snapshot) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Number returns the named field as a float64.
func (s *Snapshot) Number(name string) (float64, bool) {
	v, ok := s.fields[name]
	if !ok || v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Int returns the named field as an int.
func (s *Snapshot) Int(name string) (int, bool) {
	n, ok := s.Number(name)
	return int(n), ok
}

// Text returns the named field as a string.
func (s *Snapshot) Text(name string) (string, bool) {
	v, ok := s.fields[name]
	if !ok || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Bool returns the named field as a bool.
func (s *Snapshot) Bool(name string) (bool, bool) {
	v, ok := s.fields[name]
	if !ok || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Time returns the named field as an instant or day-only date.
func (s *Snapshot) Time(name string) (time.Time, bool) {
	v, ok := s.fields[name]
	if !ok || (v.kind != KindInstant && v.kind != KindDate) {
		return time.Time{}, false
	}
	return v.t, true
}

// Nested returns the named field as a nested Snapshot.
func (s *Snapshot) Nested(name string) (*Snapshot, bool) {
	v, ok := s.fields[name]
	if !ok || v.kind != KindNested {
		return nil, false
	}
	return v.snap, true
}

// ToMap flattens the Snapshot to a single-level mapping. Nested field names
// are prefixed with their parent key and an underscore at each level, so
// all_day.wind.angle becomes all_day_wind_angle.
func (s *Snapshot) ToMap() map[string]any {
	res := make(map[string]any, len(s.keys))
	s.flatten("", res)
	return res
}

func (s *Snapshot) flatten(prefix string, out map[string]any) {
	for _, key := range s.keys {
		v := s.fields[key]
		if v.kind == KindNested {
			v.snap.flatten(prefix+key+"_", out)
			continue
		}
		out[prefix+key] = v.native()
	}
}
